package config

import "fmt"

// EngineConfig tunes the delivery scheduling engine and its caller-side
// recalculation harness.
type EngineConfig struct {
	// SharedConcurrencyCap bounds how many shared-time items overlap.
	SharedConcurrencyCap int `json:"shared_concurrency_cap"`
	// DebounceMS collapses bursts of recalculation triggers.
	DebounceMS int `json:"debounce_ms"`
	// WorkloadTimeoutSeconds bounds the backlog fetch before the engine
	// proceeds with a zero workload.
	WorkloadTimeoutSeconds int `json:"workload_timeout_seconds"`
}

// SetDefaults applies the standard engine tuning.
func (c *EngineConfig) SetDefaults() {
	if c.SharedConcurrencyCap == 0 {
		c.SharedConcurrencyCap = 3
	}
	if c.DebounceMS == 0 {
		c.DebounceMS = 300
	}
	if c.WorkloadTimeoutSeconds == 0 {
		c.WorkloadTimeoutSeconds = 5
	}
}

// Validate checks mandatory fields.
func (c EngineConfig) Validate() error {
	if c.SharedConcurrencyCap < 1 {
		return fmt.Errorf("shared_concurrency_cap must be positive")
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must be non-negative")
	}
	if c.WorkloadTimeoutSeconds < 1 {
		return fmt.Errorf("workload_timeout_seconds must be positive")
	}
	return nil
}

// APIConfig configures the estimate HTTP endpoint.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
	Token   string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
