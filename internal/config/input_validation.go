package config

import (
	"fmt"
	"net/url"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxProblemLength is the maximum allowed length for the problem statement
	MaxProblemLength = 5000

	// MaxAnswerLength is the maximum allowed length for a single answer or modification request
	MaxAnswerLength = 4000

	// MaxModelNameLength is the maximum allowed length for model names
	MaxModelNameLength = 100

	// MaxTemplateSize is the maximum allowed size for template content
	MaxTemplateSize = 50 * 1024 // 50KB
)

// ValidateInputs performs additional security validation on user-controllable fields.
func (c *Config) ValidateInputs() error {
	if len(c.Model.ModelName) > MaxModelNameLength {
		return fmt.Errorf("model name exceeds maximum length of %d (got %d)",
			MaxModelNameLength, len(c.Model.ModelName))
	}
	if containsControlChars(c.Model.ModelName) {
		return fmt.Errorf("model name contains invalid control characters")
	}

	if err := validateBaseURL(c.Model.BaseURL); err != nil {
		return err
	}

	if err := c.validateTemplateSizes(); err != nil {
		return err
	}

	return nil
}

// ValidateUserText checks free text typed by a wizard user.
// Length is counted in characters, not bytes.
func ValidateUserText(text string, maxLen int) error {
	if n := utf8.RuneCountInString(text); n > maxLen {
		return fmt.Errorf("exceeds maximum length of %d characters (got %d)", maxLen, n)
	}
	if containsControlChars(text) {
		return fmt.Errorf("contains invalid control characters")
	}
	return nil
}

// validateBaseURL checks that the base URL is properly formatted and safe
func validateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid model.base_url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("model.base_url must use http or https scheme (got %s)", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("model.base_url must have a host")
	}

	// The credential travels as a query parameter and must not be mixed with a preset query
	if u.RawQuery != "" {
		return fmt.Errorf("model.base_url must not contain a query string")
	}

	return nil
}

// validateTemplateSizes checks that templates are within reasonable size limits
func (c *Config) validateTemplateSizes() error {
	for _, tmpl := range c.PromptTemplates.entries() {
		if len(tmpl.value) > MaxTemplateSize {
			return fmt.Errorf("template '%s' exceeds maximum size of %d bytes (got %d)",
				tmpl.name, MaxTemplateSize, len(tmpl.value))
		}
	}
	return nil
}

// containsControlChars checks if a string contains control characters
// (excluding newlines, tabs, and carriage returns which are acceptable)
func containsControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			return true
		}
	}
	return false
}
