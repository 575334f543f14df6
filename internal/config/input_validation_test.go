package config

import (
	"strings"
	"testing"
)

func TestValidateUserText_Valid(t *testing.T) {
	tests := map[string]string{
		"simple":    "carpool planning app",
		"multiline": "Multi-line\nproblem\tstatement",
		"multibyte": strings.Repeat("가", MaxAnswerLength), // counted in characters, not bytes
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if err := ValidateUserText(input, MaxAnswerLength); err != nil {
				t.Errorf("ValidateUserText(%s) returned unexpected error: %v", name, err)
			}
		})
	}
}

func TestValidateUserText_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "too_long",
			input: strings.Repeat("a", MaxAnswerLength+1),
			want:  "exceeds maximum length",
		},
		{
			name:  "control_chars",
			input: "Test\x00Answer",
			want:  "invalid control characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserText(tt.input, MaxAnswerLength)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://generativelanguage.googleapis.com/v1beta", false},
		{"http://localhost:8089/v1beta", false},
		{"ftp://example.com", true},
		{"https://", true},
		{"https://example.com/v1beta?key=abc", true},
		{"://broken", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := validateBaseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBaseURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTemplateSizes(t *testing.T) {
	cfg := Default()
	if err := cfg.validateTemplateSizes(); err != nil {
		t.Fatalf("Default templates should be within limits: %v", err)
	}

	cfg.PromptTemplates.FinalPRD = strings.Repeat("x", MaxTemplateSize+1)
	err := cfg.validateTemplateSizes()
	if err == nil {
		t.Fatal("Expected error for oversized template")
	}
	if !strings.Contains(err.Error(), "final_prd") {
		t.Errorf("Expected error to name the template, got %v", err)
	}
}

func TestContainsControlChars(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"plain", false},
		{"tab\tand\nnewline\r", false},
		{"bell\a", true},
		{"escape\x1b[31m", true},
	}

	for _, tt := range tests {
		if got := containsControlChars(tt.input); got != tt.want {
			t.Errorf("containsControlChars(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidateInputs_Integration(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateInputs(); err != nil {
		t.Fatalf("Expected defaults to pass, got: %v", err)
	}

	cfg.Model.ModelName = strings.Repeat("m", MaxModelNameLength+1)
	if err := cfg.ValidateInputs(); err == nil {
		t.Error("Expected error for long model name")
	}
}
