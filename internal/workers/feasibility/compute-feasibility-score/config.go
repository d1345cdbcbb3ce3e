package computefeasibilityscore

import (
	"time"

	"feasibility-workers/internal/common/config"
)

// No per-worker settings beyond the timeout.
type Config struct {
	Timeout time.Duration
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Config{Timeout: timeout}
}
