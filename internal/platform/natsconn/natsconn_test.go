package natsconn

import (
	"testing"
	"time"
)

func TestEnvInt_Default(t *testing.T) {
	v := envInt("NATSCONN_TEST_NONEXISTENT", 42)
	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
}

func TestEnvInt_Set(t *testing.T) {
	t.Setenv("NATSCONN_TEST_INT", "7")
	v := envInt("NATSCONN_TEST_INT", 42)
	if v != 7 {
		t.Fatalf("expected 7, got %d", v)
	}
}

func TestEnvDuration_Default(t *testing.T) {
	v := envDuration("NATSCONN_TEST_NONEXISTENT", 5*time.Second)
	if v != 5*time.Second {
		t.Fatalf("expected 5s, got %s", v)
	}
}

func TestEnvDuration_Set(t *testing.T) {
	t.Setenv("NATSCONN_TEST_DUR", "3s")
	v := envDuration("NATSCONN_TEST_DUR", 5*time.Second)
	if v != 3*time.Second {
		t.Fatalf("expected 3s, got %s", v)
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(Options{
		URL:           "nats://127.0.0.1:19999",
		MaxReconnects: 0,
		ReconnectWait: 10 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error connecting to invalid NATS URL")
	}
}

func TestWithDefaults(t *testing.T) {
	t.Setenv("NATS_URL", "")
	t.Setenv("NATS_MAX_RECONNECTS", "")
	t.Setenv("NATS_RECONNECT_WAIT", "")
	o := Options{}.withDefaults()
	if o.URL != "nats://127.0.0.1:4222" {
		t.Fatalf("unexpected default url %q", o.URL)
	}
	if o.Name != "moviescreen" || o.MaxReconnects != 5 || o.ReconnectWait != 2*time.Second {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

func TestEnvInt_Negative(t *testing.T) {
	t.Setenv("NATSCONN_TEST_NEG", "-3")
	if v := envInt("NATSCONN_TEST_NEG", 9); v != 9 {
		t.Fatalf("expected fallback 9, got %d", v)
	}
}
