package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "cfg.yaml", `
mqtt:
  broker: tcp://localhost:1883
  client_id: scheduler-test
engine:
  shared_concurrency_cap: 2
api:
  enabled: true
  token: secreto
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MQTT.Broker != "tcp://localhost:1883" {
		t.Fatalf("bad broker %q", cfg.MQTT.Broker)
	}
	if cfg.Engine.SharedConcurrencyCap != 2 {
		t.Fatalf("bad cap %d", cfg.Engine.SharedConcurrencyCap)
	}
	// Defaults fill the rest.
	if cfg.Engine.DebounceMS != 300 || cfg.Engine.WorkloadTimeoutSeconds != 5 {
		t.Fatalf("defaults not applied: %+v", cfg.Engine)
	}
	if cfg.API.Addr != ":8080" || cfg.MQTT.OrdersTopic == "" {
		t.Fatalf("defaults not applied: %+v %+v", cfg.API, cfg.MQTT)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "cfg.json", `{"metrics":{"prometheus_enabled":true,"prometheus_port":":9100"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Metrics.PrometheusEnabled || cfg.Metrics.PrometheusPort != ":9100" {
		t.Fatalf("bad metrics %+v", cfg.Metrics)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "cfg.toml", "x = 1")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadInvalidEngine(t *testing.T) {
	path := writeConfig(t, "cfg.yaml", "engine:\n  shared_concurrency_cap: -1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("K_ENGINE__DEBOUNCE_MS", "100")
	path := writeConfig(t, "cfg.yaml", "engine: {}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.DebounceMS != 100 {
		t.Fatalf("env override not applied: %d", cfg.Engine.DebounceMS)
	}
}
