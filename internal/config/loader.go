package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Load reads and parses the configuration file and environment variables.
// A missing config file is not an error: compiled defaults are used instead.
func Load(configPath string) (*Config, *Secrets, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	default:
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ValidateInputs(); err != nil {
		return nil, nil, fmt.Errorf("input validation failed: %w", err)
	}

	secrets, err := LoadSecrets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	return &cfg, secrets, nil
}

// Default returns a fully defaulted configuration without touching the filesystem
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left untouched.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to parse env file: %w", err)
	}
	return nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8080"
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 30
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 600
	}
	if cfg.Server.MaxSessions == 0 {
		cfg.Server.MaxSessions = 100
	}
	if cfg.Server.SessionIdleMinutes == 0 {
		cfg.Server.SessionIdleMinutes = 60
	}

	if cfg.Model.BaseURL == "" {
		cfg.Model.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model.ModelName == "" {
		cfg.Model.ModelName = "gemini-2.5-flash"
	}
	// TOML can't distinguish 0 from unset; a zero temperature falls back to 0.3
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = 0.3
	}
	if cfg.Model.TopK == 0 {
		cfg.Model.TopK = 40
	}
	if cfg.Model.TopP == 0 {
		cfg.Model.TopP = 0.95
	}
	if cfg.Model.MaxOutputTokens == 0 {
		cfg.Model.MaxOutputTokens = 32000
	}
	if cfg.Model.CandidateCount == 0 {
		cfg.Model.CandidateCount = 1
	}
	if cfg.Model.RateLimitPerMinute == 0 {
		cfg.Model.RateLimitPerMinute = 30
	}
	if cfg.Model.HTTPTimeoutSeconds == 0 {
		cfg.Model.HTTPTimeoutSeconds = 300
	}

	if cfg.Wizard.ProgressEstimateChars == 0 {
		cfg.Wizard.ProgressEstimateChars = 3000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 10
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 5
	}
	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = 30
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}

	applyTemplateDefaults(&cfg.PromptTemplates)
}

func applyTemplateDefaults(p *PromptTemplates) {
	defaults := []struct {
		field *string
		value func() string
	}{
		{&p.FirstQuestion, GetDefaultFirstQuestionTemplate},
		{&p.NextQuestion, GetDefaultNextQuestionTemplate},
		{&p.BasicSummary, GetDefaultBasicSummaryTemplate},
		{&p.FirstDetailedQuestion, GetDefaultFirstDetailedQuestionTemplate},
		{&p.NextDetailedQuestion, GetDefaultNextDetailedQuestionTemplate},
		{&p.DesignEnrichment, GetDefaultDesignEnrichmentTemplate},
		{&p.IterationPlan, GetDefaultIterationPlanTemplate},
		{&p.IterationSummary, GetDefaultIterationSummaryTemplate},
		{&p.UserStories, GetDefaultUserStoriesTemplate},
		{&p.FinalPRD, GetDefaultFinalPRDTemplate},
		{&p.PRDSummary, GetDefaultPRDSummaryTemplate},
		{&p.ModifyPlan, GetDefaultModifyPlanTemplate},
		{&p.ModifyStories, GetDefaultModifyStoriesTemplate},
		{&p.ModifyPRD, GetDefaultModifyPRDTemplate},
	}
	for _, d := range defaults {
		if *d.field == "" {
			*d.field = d.value()
		}
	}
}
