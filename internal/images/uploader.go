package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const uploadTimeout = 30 * time.Second

// HostedUploader rehosts images through an ImgBB-style HTTP API. All
// uploads share one token-bucket limiter so bulk ingestion cannot
// exhaust the provider quota.
type HostedUploader struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	logger   *logrus.Entry
}

// NewHostedUploader creates an uploader posting to endpoint with the
// given API key. perMinute caps upload throughput; burst allows short
// spikes at the start of a batch.
func NewHostedUploader(endpoint, apiKey string, perMinute, burst int, logger *logrus.Logger) *HostedUploader {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 5
	}
	return &HostedUploader{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: uploadTimeout},
		limiter:  rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
		logger:   logger.WithField("component", "uploader"),
	}
}

type uploadResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload submits the source URL to the hosting API and returns the
// permanent URL. Blocks on the rate limiter before sending.
func (u *HostedUploader) Upload(ctx context.Context, sourceURL string) (string, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("key", u.apiKey)
	form.Set("image", sourceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload service returned status %d", resp.StatusCode)
	}

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if !body.Success || body.Data.URL == "" {
		return "", fmt.Errorf("upload rejected with status %d", body.Status)
	}

	u.logger.WithField("url", body.Data.URL).Debug("Image rehosted")
	return body.Data.URL, nil
}
