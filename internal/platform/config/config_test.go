package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServiceName != "moviescreen" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected info, got %q", cfg.LogLevel)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVICE_NAME", " catalog ")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, _ := Load()
	if cfg.ServiceName != "catalog" || cfg.LogLevel != "debug" || cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
