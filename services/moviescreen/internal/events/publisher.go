// Package events publishes catalog refresh notifications to NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/moviescreen/services/moviescreen/internal/catalog"
)

const (
	SubjectMoviesRefreshed = "catalog.movies.refreshed"
	streamName             = "CATALOG"
)

// RefreshedEvent is the payload published after each successful publish.
type RefreshedEvent struct {
	Version     uint64    `json:"version"`
	Count       int       `json:"count"`
	Degraded    int       `json:"degraded"`
	MovieIDs    []int     `json:"movie_ids"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// jetStream is the subset of nats.JetStreamContext used by Publisher.
type jetStream interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// Publisher implements catalog.Notifier. A Publisher without JetStream is a stub.
type Publisher struct {
	js  jetStream
	log *zap.Logger
}

var _ catalog.Notifier = (*Publisher)(nil)

// New ensures the CATALOG stream exists. If js is nil, returns a no-op publisher.
func New(js nats.JetStreamContext, log *zap.Logger) (*Publisher, error) {
	if js == nil {
		log.Warn("NATS not configured, refresh events will not be published (stub mode)")
		return &Publisher{log: log}, nil
	}
	if err := ensureStream(js); err != nil {
		return nil, err
	}
	log.Info("NATS publisher initialised", zap.String("stream", streamName))
	return &Publisher{js: js, log: log}, nil
}

func ensureStream(js nats.JetStreamContext) error {
	_, err := js.StreamInfo(streamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return err
	}
	_, err = js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{"catalog.>"},
		Storage:  nats.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	})
	return err
}

func (p *Publisher) Refreshed(_ context.Context, st catalog.State, degraded int) error {
	ids := make([]int, len(st.Movies))
	for i, m := range st.Movies {
		ids[i] = m.ID
	}
	evt := RefreshedEvent{
		Version:     st.Version,
		Count:       len(st.Movies),
		Degraded:    degraded,
		MovieIDs:    ids,
		RefreshedAt: st.RefreshedAt,
	}
	if p.js == nil {
		p.log.Debug("NATS stub: skipping publish", zap.String("subject", SubjectMoviesRefreshed), zap.Uint64("version", evt.Version))
		return nil
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	ack, err := p.js.Publish(SubjectMoviesRefreshed, data)
	if err != nil {
		return err
	}
	p.log.Debug("NATS event published",
		zap.String("subject", SubjectMoviesRefreshed),
		zap.Uint64("version", evt.Version),
		zap.Uint64("seq", ack.Sequence),
	)
	return nil
}
