package notifysupportteam

import (
	"fmt"
	"time"

	"retention-workers/internal/common/config"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	EmailEnabled  bool          `mapstructure:"email_enabled"`
	SMSEnabled    bool          `mapstructure:"sms_enabled"`
	FromEmail     string        `mapstructure:"from_email"`
	AdvisorEmail  string        `mapstructure:"advisor_email"`
	PhoneNumber   string        `mapstructure:"phone_number"`
	SenderID      string        `mapstructure:"sender_id"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
		FromEmail:     "retention-alerts@university.edu",
		AdvisorEmail:  "advising@university.edu",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.EmailEnabled {
		if c.FromEmail == "" {
			return fmt.Errorf("from_email is required when email is enabled")
		}
		if c.AdvisorEmail == "" {
			return fmt.Errorf("advisor_email is required when email is enabled")
		}
	}
	if c.SMSEnabled && c.PhoneNumber == "" {
		return fmt.Errorf("phone_number is required when sms is enabled")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, custom *Config) *Config {
	if custom != nil {
		return custom
	}
	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	wcfg := config.GetWorkerConfig(appConfig, TaskType)
	cfg.Enabled = wcfg.Enabled
	if wcfg.MaxJobsActive > 0 {
		cfg.MaxJobsActive = wcfg.MaxJobsActive
	}
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}

	n := appConfig.Notifications
	cfg.EmailEnabled = n.Enabled && n.Email.Enabled
	cfg.SMSEnabled = n.Enabled && n.SMS.Enabled
	if n.Email.FromEmail != "" {
		cfg.FromEmail = n.Email.FromEmail
	}
	if n.Email.AdvisorEmail != "" {
		cfg.AdvisorEmail = n.Email.AdvisorEmail
	}
	cfg.PhoneNumber = n.SMS.PhoneNumber
	cfg.SenderID = n.SMS.SenderID
	return cfg
}
