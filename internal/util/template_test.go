package util

import (
	"strings"
	"sync"
	"testing"
)

func TestRenderTemplate_Basic(t *testing.T) {
	tmpl := "Problem: {{.Problem}}\nAsk question {{.Position}} of {{.Total}}."
	data := map[string]interface{}{
		"Problem":  "Freelancers lose track of invoices",
		"Position": 2,
		"Total":    6,
	}

	result, err := RenderTemplate(tmpl, data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := "Problem: Freelancers lose track of invoices\nAsk question 2 of 6."
	if result != expected {
		t.Errorf("Expected '%s', got '%s'", expected, result)
	}
}

func TestRenderTemplate_Conditional(t *testing.T) {
	tmpl := "{{if .EnrichedDesign}}Design:\n{{.EnrichedDesign}}\n{{end}}Plan"

	with, err := RenderTemplate(tmpl, map[string]interface{}{"EnrichedDesign": "Toss blue"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if with != "Design:\nToss blue\nPlan" {
		t.Errorf("Unexpected render with design: %q", with)
	}

	without, err := RenderTemplate(tmpl, map[string]interface{}{"EnrichedDesign": ""})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if without != "Plan" {
		t.Errorf("Expected 'Plan', got %q", without)
	}
}

func TestRenderTemplate_InvalidTemplate(t *testing.T) {
	_, err := RenderTemplate("Hello {{.Name", map[string]interface{}{"Name": "Alice"})
	if err == nil {
		t.Error("Expected error for invalid template, got nil")
	}
}

func TestRenderTemplate_MissingKey(t *testing.T) {
	_, err := RenderTemplate("Hello {{.Name}}", map[string]interface{}{})
	if err == nil {
		t.Fatal("Expected error for missing key, got nil")
	}
	if !strings.Contains(err.Error(), "failed to execute template") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRenderTemplate_ForbiddenDirectives(t *testing.T) {
	for _, tmpl := range []string{
		`{{define "x"}}y{{end}}`,
		`{{template "x"}}`,
		`{{block "x" .}}y{{end}}`,
		`{{call .Fn}}`,
	} {
		if _, err := RenderTemplate(tmpl, map[string]interface{}{}); err == nil {
			t.Errorf("Expected forbidden directive error for %q", tmpl)
		}
		if err := CheckTemplate(tmpl); err == nil {
			t.Errorf("CheckTemplate accepted %q", tmpl)
		}
	}
}

func TestRenderTemplate_EmptyTemplate(t *testing.T) {
	result, err := RenderTemplate("", map[string]interface{}{"Name": "Alice"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result != "" {
		t.Errorf("Expected empty result, got '%s'", result)
	}
}

func TestTemplateCache_ConcurrentRender(t *testing.T) {
	ClearTemplateCache()

	tmpl := "Answered: {{.Answered}}"
	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := RenderTemplate(tmpl, map[string]interface{}{"Answered": n}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent render failed: %v", err)
	}

	ClearTemplateCache()
	result, err := RenderTemplate(tmpl, map[string]interface{}{"Answered": 3})
	if err != nil || result != "Answered: 3" {
		t.Errorf("Render after clear: got %q, %v", result, err)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncate me", 8, "truncate..."},
		{"한국어 문제 정의", 3, "한국어..."},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFirstRunes(t *testing.T) {
	if got := FirstRunes("가나다라", 2); got != "가나" {
		t.Errorf("Expected '가나', got %q", got)
	}
	if got := FirstRunes("ab", 5); got != "ab" {
		t.Errorf("Expected 'ab', got %q", got)
	}
}
