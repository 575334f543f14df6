package prompt

import (
	"strings"
	"testing"
)

func TestLookupAppGuide(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"Something like Toss, very clean", "#0064FF"},
		{"토스 스타일", "#0064FF"},
		{"youtube feed", "#FF0000"},
		{"Karrot market vibes", "#FF6F0F"},
		{"Coupang and Toss", "#5F0080"},
		{"my own style", ""},
	}

	for _, tt := range tests {
		got := LookupAppGuide(tt.answer)
		if tt.want == "" {
			if got != "" {
				t.Errorf("%q: expected no guide, got %q", tt.answer, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("%q: expected guide containing %s, got %q", tt.answer, tt.want, got)
		}
	}
}

func TestNewDesignInput(t *testing.T) {
	in := NewDesignInput([]string{"Notion", "light blue"})

	if in.ReferenceApp != "Notion" || in.MainColor != "light blue" {
		t.Errorf("Unexpected mapping: %+v", in)
	}
	if in.Interactions != "" || in.MainScreens != "" {
		t.Error("Missing answers should stay empty")
	}
	if !strings.Contains(in.AppGuide, "left sidebar") {
		t.Errorf("Expected Notion guide, got %q", in.AppGuide)
	}
}

func TestPrimaryColor(t *testing.T) {
	tests := map[string]string{
		"#FF6B6B":                   "#FF6B6B",
		"Same as the reference app": "Same as the reference app",
		"bright orange":             unknownColorPlaceholder,
	}
	for color, want := range tests {
		if got := (DesignInput{MainColor: color}).PrimaryColor(); got != want {
			t.Errorf("PrimaryColor(%q) = %q, want %q", color, got, want)
		}
	}
}

func TestScreenAndInteractionSections(t *testing.T) {
	in := DesignInput{
		MainScreens:  "- Home\n- Invoice detail\n\n",
		Interactions: "tap a card\n- pull to refresh",
	}

	screens := in.ScreenSections()
	if !strings.Contains(screens, "### Home\n- Top: [components]\n") {
		t.Errorf("Unexpected screen sections:\n%s", screens)
	}
	if strings.Count(screens, "### ") != 2 {
		t.Errorf("Expected 2 screens, got:\n%s", screens)
	}

	interactions := in.InteractionSections()
	want := "tap a card\n- Behaviour: [concrete description]\npull to refresh\n- Behaviour: [concrete description]\n"
	if interactions != want {
		t.Errorf("Expected %q, got %q", want, interactions)
	}
}
