package shareresult

import (
	"time"

	"feasibility-workers/internal/common/config"
)

type Config struct {
	Timeout   time.Duration
	BrandName string
	// PageURL is shared when the job does not carry its own.
	PageURL      string
	EmailEnabled bool
	FromEmail    string
	SMSEnabled   bool
	SenderID     string
}

func LoadConfig(cfg *config.Config) *Config {
	aws := cfg.Integrations.AWS
	c := &Config{
		Timeout:      config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		BrandName:    cfg.Document.BrandName,
		PageURL:      cfg.Share.PageURL,
		EmailEnabled: aws.SES.Enabled,
		FromEmail:    aws.SES.FromEmail,
		SMSEnabled:   aws.SNS.Enabled,
		SenderID:     aws.SNS.SenderID,
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return c
}
