package savesession

import (
	"time"

	"feasibility-workers/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	SessionTTL time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:    config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		SessionTTL: config.GetDuration(cfg.Session.TTL),
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	return c
}
