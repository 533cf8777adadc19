package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/moviescreen/services/moviescreen/internal/catalog"
)

type fakeJS struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeJS) Publish(subj string, data []byte, _ ...nats.PubOpt) (*nats.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.subject, f.data = subj, data
	return &nats.PubAck{Stream: streamName, Sequence: 7}, nil
}

func testState() catalog.State {
	return catalog.State{
		Movies:      []catalog.Movie{{ID: 3}, {ID: 1}},
		Version:     4,
		RefreshedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNew_StubWithoutJetStream(t *testing.T) {
	p, err := New(nil, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Refreshed(context.Background(), testState(), 0); err != nil {
		t.Fatalf("stub publish should succeed, got %v", err)
	}
}

func TestRefreshed_Payload(t *testing.T) {
	js := &fakeJS{}
	p := &Publisher{js: js, log: zap.NewNop()}

	if err := p.Refreshed(context.Background(), testState(), 1); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if js.subject != SubjectMoviesRefreshed {
		t.Fatalf("unexpected subject %q", js.subject)
	}
	var evt RefreshedEvent
	if err := json.Unmarshal(js.data, &evt); err != nil {
		t.Fatal(err)
	}
	if evt.Version != 4 || evt.Count != 2 || evt.Degraded != 1 {
		t.Fatalf("unexpected event %+v", evt)
	}
	if len(evt.MovieIDs) != 2 || evt.MovieIDs[0] != 3 || evt.MovieIDs[1] != 1 {
		t.Fatalf("unexpected ids %v", evt.MovieIDs)
	}
}

func TestRefreshed_PublishError(t *testing.T) {
	p := &Publisher{js: &fakeJS{err: errors.New("nats: timeout")}, log: zap.NewNop()}
	if err := p.Refreshed(context.Background(), testState(), 0); err == nil {
		t.Fatal("expected publish error to surface")
	}
}
