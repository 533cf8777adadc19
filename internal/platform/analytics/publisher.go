// Package analytics provides a fire-and-forget NATS publisher for
// viewer-behaviour events (detail views, searches).
package analytics

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectMovieViewed     = "analytics.catalog.movie_viewed"
	SubjectSearchPerformed = "analytics.search.performed"
)

// Event is the canonical envelope sent to all analytics.* subjects.
type Event struct {
	EventID    string         `json:"event_id"`
	EventName  string         `json:"event_name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Properties map[string]any `json:"properties,omitempty"`
}

// asyncPublisher is the subset of nats.JetStreamContext used here.
type asyncPublisher interface {
	PublishAsync(subj string, data []byte, opts ...nats.PubOpt) (nats.PubAckFuture, error)
}

// Publisher publishes analytics events to NATS JetStream.
// A nil pointer is a safe no-op stub.
type Publisher struct {
	js  asyncPublisher
	log *zap.Logger
	now func() time.Time
}

// New creates a Publisher. Pass js=nil to get a no-op stub.
func New(js nats.JetStreamContext, log *zap.Logger) *Publisher {
	if js == nil {
		return nil
	}
	return &Publisher{js: js, log: log, now: time.Now}
}

// MovieViewed records a successful details lookup.
func (p *Publisher) MovieViewed(movieID int) {
	p.publish(SubjectMovieViewed, "movie_viewed", map[string]any{"movie_id": movieID})
}

// SearchPerformed records a non-empty title search and its hit count.
func (p *Publisher) SearchPerformed(query string, hits int) {
	p.publish(SubjectSearchPerformed, "search_performed", map[string]any{"query": query, "hits": hits})
}

// Failures are logged as warnings and never surface to the caller.
func (p *Publisher) publish(subject, eventName string, props map[string]any) {
	if p == nil || p.js == nil {
		return
	}
	ev := Event{
		EventID:    uuid.NewString(),
		EventName:  eventName,
		OccurredAt: p.now().UTC(),
		Properties: props,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("analytics: marshal failed", zap.String("event", eventName), zap.Error(err))
		return
	}
	if _, err := p.js.PublishAsync(subject, data); err != nil {
		p.log.Warn("analytics: publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
