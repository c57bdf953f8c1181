package config

import (
	"slices"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE", "KAFKA_BROKERS", "SHUTDOWN_TIMEOUT", "DB_MAX_CONNS",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Storage != StoragePostgres {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Kafka.Enabled() {
		t.Fatalf("kafka should be disabled without brokers")
	}
	if cfg.ShutdownTimeout != 10*time.Second || cfg.DB.MaxConns != 20 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if want := "host=localhost port=5432 user=postgres password=postgres dbname=bookings sslmode=disable"; cfg.DB.DSN() != want {
		t.Fatalf("expected DSN %q, got %q", want, cfg.DB.DSN())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE", "Memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("KAFKA_TOPIC", "bookings")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("DB_MAX_CONNS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("expected memory storage, got %q", cfg.Storage)
	}
	if !slices.Equal(cfg.Kafka.Brokers, []string{"k1:9092", "k2:9092"}) || cfg.Kafka.Topic != "bookings" {
		t.Fatalf("unexpected kafka config %+v", cfg.Kafka)
	}
	if cfg.ShutdownTimeout != 3*time.Second || cfg.DB.MaxConns != 5 {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"bad storage":      {"STORAGE", "sqlite"},
		"bad max conns":    {"DB_MAX_CONNS", "-1"},
		"bad shutdown dur": {"SHUTDOWN_TIMEOUT", "soon"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
