package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: "server.addr",
		},
		{
			name:    "too many sessions",
			mutate:  func(c *Config) { c.Server.MaxSessions = MaxSessions + 1 },
			wantErr: "server.max_sessions",
		},
		{
			name:    "negative idle timeout",
			mutate:  func(c *Config) { c.Server.SessionIdleMinutes = -5 },
			wantErr: "server.session_idle_minutes",
		},
		{
			name:    "temperature out of range",
			mutate:  func(c *Config) { c.Model.Temperature = 3 },
			wantErr: "model.temperature",
		},
		{
			name:    "multiple candidates",
			mutate:  func(c *Config) { c.Model.CandidateCount = 2 },
			wantErr: "model.candidate_count",
		},
		{
			name:    "zero progress estimate",
			mutate:  func(c *Config) { c.Wizard.ProgressEstimateChars = 0 },
			wantErr: "wizard.progress_estimate_chars",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "blank template",
			mutate:  func(c *Config) { c.PromptTemplates.IterationPlan = "   " },
			wantErr: "prompt_templates.iteration_plan",
		},
		{
			name:    "template with forbidden directive",
			mutate:  func(c *Config) { c.PromptTemplates.ModifyPRD = `{{template "x"}}` },
			wantErr: "prompt_templates.modify_prd",
		},
		{
			name:    "unparseable template",
			mutate:  func(c *Config) { c.PromptTemplates.PRDSummary = "{{.PRD" },
			wantErr: "prompt_templates.prd_summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultsMatchBackendKnobs(t *testing.T) {
	cfg := Default()

	if cfg.Model.Temperature != 0.3 {
		t.Errorf("Expected temperature 0.3, got %v", cfg.Model.Temperature)
	}
	if cfg.Model.TopK != 40 {
		t.Errorf("Expected top_k 40, got %d", cfg.Model.TopK)
	}
	if cfg.Model.TopP != 0.95 {
		t.Errorf("Expected top_p 0.95, got %v", cfg.Model.TopP)
	}
	if cfg.Model.MaxOutputTokens != 32000 {
		t.Errorf("Expected max_output_tokens 32000, got %d", cfg.Model.MaxOutputTokens)
	}
	if cfg.Model.CandidateCount != 1 {
		t.Errorf("Expected candidate_count 1, got %d", cfg.Model.CandidateCount)
	}
	if cfg.Model.ModelName != "gemini-2.5-flash" {
		t.Errorf("Expected gemini-2.5-flash, got %s", cfg.Model.ModelName)
	}
	if cfg.Wizard.ProgressEstimateChars != 3000 {
		t.Errorf("Expected progress estimate 3000, got %d", cfg.Wizard.ProgressEstimateChars)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
addr = "0.0.0.0:9090"

[model]
model_name = "gemini-2.5-pro"
rate_limit_per_minute = 10

[wizard]
use_real_ai = true

[prompt_templates]
modify_plan = "Plan: {{.Current}} / {{.Request}}"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "  secret-key ")
	t.Setenv("API_KEY", "")

	cfg, secrets, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:9090" {
		t.Errorf("Expected addr override, got %s", cfg.Server.Addr)
	}
	if cfg.Model.ModelName != "gemini-2.5-pro" {
		t.Errorf("Expected model override, got %s", cfg.Model.ModelName)
	}
	if cfg.Model.TopK != 40 {
		t.Errorf("Expected default top_k to be applied, got %d", cfg.Model.TopK)
	}
	if !cfg.Wizard.UseRealAI {
		t.Error("Expected use_real_ai to be true")
	}
	if cfg.PromptTemplates.ModifyPlan != "Plan: {{.Current}} / {{.Request}}" {
		t.Errorf("Expected template override, got %q", cfg.PromptTemplates.ModifyPlan)
	}
	if cfg.PromptTemplates.ModifyPRD != GetDefaultModifyPRDTemplate() {
		t.Error("Expected untouched templates to fall back to defaults")
	}
	if secrets.GeminiAPIKey != "secret-key" {
		t.Errorf("Expected trimmed key 'secret-key', got %q", secrets.GeminiAPIKey)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, _, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Expected defaults for a missing file, got error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Expected default addr, got %s", cfg.Server.Addr)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\naddr ="), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, _, err := Load(path); err == nil {
		t.Fatal("Expected parse error, got nil")
	}
}

func TestLoadSecrets(t *testing.T) {
	tests := []struct {
		name    string
		gemini  string
		generic string
		want    string
	}{
		{"gemini key", "gemini-key", "", "gemini-key"},
		{"generic fallback", "", "generic-key", "generic-key"},
		{"gemini wins", "gemini-key", "generic-key", "gemini-key"},
		{"none", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", tt.gemini)
			t.Setenv("API_KEY", tt.generic)

			secrets, err := LoadSecrets()
			if err != nil {
				t.Fatalf("LoadSecrets() error = %v", err)
			}
			if secrets.GeminiAPIKey != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, secrets.GeminiAPIKey)
			}
			if secrets.HasAPIKey() != (tt.want != "") {
				t.Errorf("HasAPIKey() = %v for key %q", secrets.HasAPIKey(), tt.want)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PRDFORGE_TEST_VALUE=from-file\n# comment\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv("PRDFORGE_TEST_VALUE", "")
	_ = os.Unsetenv("PRDFORGE_TEST_VALUE")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("PRDFORGE_TEST_VALUE"); got != "from-file" {
		t.Errorf("Expected 'from-file', got %q", got)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for missing env file")
	}
}
