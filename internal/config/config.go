package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lamim/prdforge/internal/util"
)

// Config represents the complete application configuration
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Model           ModelConfig     `toml:"model"`
	Wizard          WizardConfig    `toml:"wizard"`
	Logging         LoggingConfig   `toml:"logging"`
	Output          OutputConfig    `toml:"output"`
	PromptTemplates PromptTemplates `toml:"prompt_templates"`
}

// ServerConfig holds settings for the HTTP host
type ServerConfig struct {
	Addr                string   `toml:"addr"`
	ReadTimeoutSeconds  int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `toml:"write_timeout_seconds"` // Must cover a full step 5 generation (default 600)
	MaxSessions         int      `toml:"max_sessions"`
	SessionIdleMinutes  int      `toml:"session_idle_minutes"` // Idle sessions are dropped after this long (default 60)
	AllowedOrigins      []string `toml:"allowed_origins"`      // Extra websocket origins besides localhost
}

// ModelConfig represents the generative backend endpoint and its fixed knobs
type ModelConfig struct {
	BaseURL            string  `toml:"base_url"`
	ModelName          string  `toml:"model_name"`
	Temperature        float64 `toml:"temperature"`
	TopK               int     `toml:"top_k"`
	TopP               float64 `toml:"top_p"`
	MaxOutputTokens    int     `toml:"max_output_tokens"`
	CandidateCount     int     `toml:"candidate_count"`
	RateLimitPerMinute int     `toml:"rate_limit_per_minute"`
	HTTPTimeoutSeconds int     `toml:"http_timeout_seconds"` // Streaming calls may run for minutes (default 300)
}

// WizardConfig holds wizard behaviour settings
type WizardConfig struct {
	UseRealAI             bool `toml:"use_real_ai"`             // Start sessions in real AI mode (requires GEMINI_API_KEY)
	ProgressEstimateChars int  `toml:"progress_estimate_chars"` // Expected response length used for progress estimates (default 3000)
	MockDelayMillis       int  `toml:"mock_delay_ms"`           // Artificial delay for canned responses (0 = none)
}

// LoggingConfig holds log sink settings
type LoggingConfig struct {
	Level      string `toml:"level"` // debug, info, warn, error
	File       string `toml:"file"`  // Empty = <output.dir>/prdforge.log
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// OutputConfig holds export settings
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// PromptTemplates holds all customizable prompt templates
type PromptTemplates struct {
	FirstQuestion         string `toml:"first_question"`
	NextQuestion          string `toml:"next_question"`
	BasicSummary          string `toml:"basic_summary"`
	FirstDetailedQuestion string `toml:"first_detailed_question"`
	NextDetailedQuestion  string `toml:"next_detailed_question"`
	DesignEnrichment      string `toml:"design_enrichment"`
	IterationPlan         string `toml:"iteration_plan"`
	IterationSummary      string `toml:"iteration_summary"`
	UserStories           string `toml:"user_stories"`
	FinalPRD              string `toml:"final_prd"`
	PRDSummary            string `toml:"prd_summary"`
	ModifyPlan            string `toml:"modify_plan"`
	ModifyStories         string `toml:"modify_stories"`
	ModifyPRD             string `toml:"modify_prd"`
}

// Secrets holds sensitive credentials loaded from environment variables
type Secrets struct {
	GeminiAPIKey string
}

const (
	// MaxSessions is the upper bound for concurrently held wizard sessions
	MaxSessions = 10000
	// MaxOutputTokensLimit is the largest output budget the backend accepts
	MaxOutputTokensLimit = 65536
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.MaxSessions < 1 || c.Server.MaxSessions > MaxSessions {
		return fmt.Errorf("server.max_sessions must be between 1 and %d (got %d)", MaxSessions, c.Server.MaxSessions)
	}
	if c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if c.Server.SessionIdleMinutes < 1 {
		return fmt.Errorf("server.session_idle_minutes must be at least 1 (got %d)", c.Server.SessionIdleMinutes)
	}

	if err := validateModelConfig(c.Model); err != nil {
		return err
	}

	if c.Wizard.ProgressEstimateChars < 1 {
		return fmt.Errorf("wizard.progress_estimate_chars must be at least 1")
	}
	if c.Wizard.MockDelayMillis < 0 || c.Wizard.MockDelayMillis > 60000 {
		return fmt.Errorf("wizard.mock_delay_ms must be between 0 and 60000 (got %d)", c.Wizard.MockDelayMillis)
	}

	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.MaxSizeMB < 1 {
		return fmt.Errorf("logging.max_size_mb must be at least 1")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}

	for _, tmpl := range c.PromptTemplates.entries() {
		if strings.TrimSpace(tmpl.value) == "" {
			return fmt.Errorf("prompt_templates.%s must not be empty", tmpl.name)
		}
		if err := util.CheckTemplate(tmpl.value); err != nil {
			return fmt.Errorf("prompt_templates.%s: %w", tmpl.name, err)
		}
	}

	return nil
}

func validateModelConfig(mc ModelConfig) error {
	if mc.BaseURL == "" {
		return fmt.Errorf("model.base_url is required")
	}
	if mc.ModelName == "" {
		return fmt.Errorf("model.model_name is required")
	}
	if mc.Temperature < 0 || mc.Temperature > 2 {
		return fmt.Errorf("model.temperature must be between 0 and 2")
	}
	if mc.TopP <= 0 || mc.TopP > 1 {
		return fmt.Errorf("model.top_p must be in (0, 1]")
	}
	if mc.TopK < 1 {
		return fmt.Errorf("model.top_k must be at least 1")
	}
	if mc.MaxOutputTokens < 1 || mc.MaxOutputTokens > MaxOutputTokensLimit {
		return fmt.Errorf("model.max_output_tokens must be between 1 and %d", MaxOutputTokensLimit)
	}
	if mc.CandidateCount != 1 {
		return fmt.Errorf("model.candidate_count must be 1 (got %d)", mc.CandidateCount)
	}
	if mc.RateLimitPerMinute < 1 {
		return fmt.Errorf("model.rate_limit_per_minute must be at least 1")
	}
	if mc.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("model.http_timeout_seconds must not be negative")
	}
	return nil
}

type namedTemplate struct {
	name  string
	value string
}

func (p PromptTemplates) entries() []namedTemplate {
	return []namedTemplate{
		{"first_question", p.FirstQuestion},
		{"next_question", p.NextQuestion},
		{"basic_summary", p.BasicSummary},
		{"first_detailed_question", p.FirstDetailedQuestion},
		{"next_detailed_question", p.NextDetailedQuestion},
		{"design_enrichment", p.DesignEnrichment},
		{"iteration_plan", p.IterationPlan},
		{"iteration_summary", p.IterationSummary},
		{"user_stories", p.UserStories},
		{"final_prd", p.FinalPRD},
		{"prd_summary", p.PRDSummary},
		{"modify_plan", p.ModifyPlan},
		{"modify_stories", p.ModifyStories},
		{"modify_prd", p.ModifyPRD},
	}
}

// ParseLogLevel maps a config level name to a slog level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level %q", level)
	}
}

// LoadSecrets loads sensitive credentials from environment variables
func LoadSecrets() (*Secrets, error) {
	secrets := &Secrets{}

	// Provider-specific key wins over the generic one
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		secrets.GeminiAPIKey = strings.TrimSpace(key)
	} else if key := os.Getenv("API_KEY"); key != "" {
		secrets.GeminiAPIKey = strings.TrimSpace(key)
	}

	return secrets, nil
}

// HasAPIKey reports whether a backend credential is available
func (s *Secrets) HasAPIKey() bool {
	return s != nil && s.GeminiAPIKey != ""
}
