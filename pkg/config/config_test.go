package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Corpus.Backend != "json" {
		t.Errorf("Corpus.Backend = %q, want json", cfg.Corpus.Backend)
	}
	if cfg.Search.DefaultLimit != 5 || cfg.Search.MaxResults != 20 {
		t.Errorf("unexpected search limits: %+v", cfg.Search)
	}
	if cfg.Redis.CacheTTL != 60*time.Second {
		t.Errorf("Redis.CacheTTL = %s, want 60s", cfg.Redis.CacheTTL)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9999
corpus:
  backend: postgres
  table: chunks
search:
  defaultLimit: 3
  maxResults: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Corpus.Backend != "postgres" || cfg.Corpus.Table != "chunks" {
		t.Errorf("unexpected corpus config: %+v", cfg.Corpus)
	}
	if cfg.Search.DefaultLimit != 3 || cfg.Search.MaxResults != 10 {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	// Unset fields keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LS_SERVER_PORT", "7070")
	t.Setenv("LS_CORPUS_BACKEND", "postgres")
	t.Setenv("LS_POSTGRES_HOST", "db.internal")
	t.Setenv("LS_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("LS_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Corpus.Backend != "postgres" {
		t.Errorf("Corpus.Backend = %q, want postgres", cfg.Corpus.Backend)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("Postgres.Host = %q", cfg.Postgres.Host)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestValidation(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		return path
	}

	tests := []struct {
		name    string
		content string
	}{
		{"zero default limit", "search:\n  defaultLimit: 0\n"},
		{"max below default", "search:\n  defaultLimit: 10\n  maxResults: 5\n"},
		{"unknown backend", "corpus:\n  backend: chroma\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(write(t, tt.content)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host: "localhost", Port: 5432, Database: "lexsearch",
		User: "app", Password: "secret", SSLMode: "disable",
	}
	want := "host=localhost port=5432 user=app password=secret dbname=lexsearch sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
