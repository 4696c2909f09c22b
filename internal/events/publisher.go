// Package events publishes storefront domain events over NATS.
// Publishing is best effort: a missing or failed broker never blocks a
// request.
package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const (
	SubjectProductCreated = "storefront.product.created"
	SubjectProductUpdated = "storefront.product.updated"
	SubjectProductDeleted = "storefront.product.deleted"
	SubjectOrderCreated   = "storefront.order.created"
	SubjectOrderUpdated   = "storefront.order.updated"
	SubjectImportFinished = "storefront.catalog.imported"
)

// Envelope wraps every published event.
type Envelope struct {
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Publisher emits events to NATS. A nil Publisher or one constructed
// without a broker URL is a no-op, so callers never nil-check.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to the broker at url. An empty url returns a
// disabled publisher; a failed connection is logged and also returns a
// disabled publisher.
func NewPublisher(url string, logger *logrus.Logger) *Publisher {
	log := logger.WithField("component", "events")
	if url == "" {
		log.Info("No NATS URL configured, event publishing disabled")
		return &Publisher{logger: log}
	}

	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		log.WithError(err).Warn("NATS unreachable, event publishing disabled")
		return &Publisher{logger: log}
	}

	log.WithField("url", url).Info("Connected to NATS")
	return &Publisher{conn: conn, logger: log}
}

// Publish emits one event. Errors are logged, never returned.
func (p *Publisher) Publish(subject string, data interface{}) {
	if p == nil || p.conn == nil {
		return
	}
	payload, err := json.Marshal(Envelope{
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to encode event")
		return
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
	}
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.WithError(err).Warn("Error draining NATS connection")
	}
}
