package renderdocument

import (
	"time"

	"feasibility-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// DocumentTTL bounds how long rendered bytes stay downloadable.
	DocumentTTL time.Duration
	BrandName   string
	Currency    string
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:     config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		DocumentTTL: config.GetDuration(cfg.Document.TTL),
		BrandName:   cfg.Document.BrandName,
		Currency:    cfg.Document.Currency,
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.DocumentTTL <= 0 {
		c.DocumentTTL = 24 * time.Hour
	}
	return c
}
