// Package images resolves heterogeneous spreadsheet image references
// (hosted URLs, bare filenames, Google Drive share links, opaque Drive
// ids) to servable URLs. Resolution never fails a row: when every
// other strategy is exhausted, a deterministic Drive direct-view URL
// is emitted.
package images

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".avif", ".bmp"}

var (
	drivePathRe  = regexp.MustCompile(`/(?:file/)?d/([a-zA-Z0-9_-]{10,})`)
	driveQueryRe = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]{10,})`)
	bareDriveRe  = regexp.MustCompile(`^[a-zA-Z0-9_-]{6,}$`)
)

// Uploader rehosts a remote image and returns its new public URL.
type Uploader interface {
	Upload(ctx context.Context, sourceURL string) (string, error)
}

// Pipeline resolves raw image references. uploader may be nil, in
// which case Drive references go straight to the direct-view fallback.
type Pipeline struct {
	urlMap   map[string]string
	uploader Uploader
	logger   *logrus.Entry
}

// NewPipeline creates a pipeline. urlMap holds caller-supplied
// overrides keyed by the verbatim raw value and wins over every other
// strategy.
func NewPipeline(urlMap map[string]string, uploader Uploader, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		urlMap:   urlMap,
		uploader: uploader,
		logger:   logger.WithField("component", "images"),
	}
}

// Resolve maps one raw reference to a servable URL. Empty input stays
// empty.
func (p *Pipeline) Resolve(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if mapped, ok := p.urlMap[raw]; ok && mapped != "" {
		return mapped
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if id := driveID(raw); id != "" {
			return p.rehost(ctx, raw, id)
		}
		return raw
	}

	if strings.HasPrefix(raw, "/") {
		return raw
	}

	if hasImageExtension(raw) {
		return "/uploads/" + raw
	}

	if bareDriveRe.MatchString(raw) {
		return p.rehost(ctx, "https://drive.google.com/uc?export=view&id="+raw, raw)
	}

	// Unrecognized relative reference, treat like a local upload.
	return "/uploads/" + raw
}

// ResolveAll resolves a list of references, dropping entries that
// resolve to empty.
func (p *Pipeline) ResolveAll(ctx context.Context, raws []string) []string {
	if len(raws) == 0 {
		return nil
	}
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		if resolved := p.Resolve(ctx, raw); resolved != "" {
			out = append(out, resolved)
		}
	}
	return out
}

// rehost uploads a Drive-hosted image to the configured host. Upload
// failures fall back to the deterministic direct-view URL so rows are
// never lost to a flaky upload.
func (p *Pipeline) rehost(ctx context.Context, sourceURL, id string) string {
	fallback := "https://drive.google.com/uc?export=view&id=" + id
	if p.uploader == nil {
		return fallback
	}
	hosted, err := p.uploader.Upload(ctx, fallback)
	if err != nil {
		p.logger.WithError(err).WithField("source", sourceURL).Warn("Image upload failed, using direct-view URL")
		return fallback
	}
	return hosted
}

// driveID extracts a Google Drive file id from a share link, or ""
// when the URL is not a Drive link.
func driveID(url string) string {
	if !strings.Contains(url, "drive.google.com") && !strings.Contains(url, "docs.google.com") {
		return ""
	}
	if m := drivePathRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := driveQueryRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

func hasImageExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
