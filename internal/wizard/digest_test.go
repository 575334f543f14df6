package wizard

import "testing"

func TestQuestionHeadline(t *testing.T) {
	got := QuestionHeadline("  Who will use it?\n\nExamples:\n- a\n")
	if got != "Who will use it?" {
		t.Errorf("Expected headline, got %q", got)
	}
	if QuestionHeadline("single line") != "single line" {
		t.Error("Expected the whole single line")
	}
}

func TestParseIterationSummary(t *testing.T) {
	summary := "Iteration 1: MVP - Invoice list and reminders.\n\n" +
		"Iteration 2: Reports - Monthly charts.\nExport to CSV.\n\n\n" +
		"Some free text"

	got := ParseIterationSummary(summary)
	if len(got) != 3 {
		t.Fatalf("Expected 3 blocks, got %d", len(got))
	}
	if got[0].Number != 1 || got[0].Title != "MVP" || got[0].Body != "Invoice list and reminders." {
		t.Errorf("Unexpected first block: %+v", got[0])
	}
	if got[1].Number != 2 || got[1].Body != "Monthly charts.\nExport to CSV." {
		t.Errorf("Unexpected second block: %+v", got[1])
	}
	if got[2].Number != 0 || got[2].Title != "" || got[2].Raw != "Some free text" {
		t.Errorf("Unstructured block should keep only Raw: %+v", got[2])
	}
	if ParseIterationSummary("   ") != nil {
		t.Error("Expected nil for blank summary")
	}
}

func TestParseSectionSummary(t *testing.T) {
	summary := "### Problem\nLate invoices.\n\n###Solution\nReminders.\n\nloose text"

	got := ParseSectionSummary(summary)
	if len(got) != 3 {
		t.Fatalf("Expected 3 sections, got %d", len(got))
	}
	if got[0] != (SectionDigest{Title: "Problem", Body: "Late invoices."}) {
		t.Errorf("Unexpected first section: %+v", got[0])
	}
	if got[1].Title != "Solution" {
		t.Errorf("Expected heading without space to parse, got %+v", got[1])
	}
	if got[2] != (SectionDigest{Body: "loose text"}) {
		t.Errorf("Expected untitled section, got %+v", got[2])
	}
}

func TestSplitUserStories(t *testing.T) {
	doc := "# User Stories\n\n## Story 1: List invoices\n**As a** freelancer\n\n## Story 2:\nno title here\n"

	got := SplitUserStories(doc)
	if len(got) != 2 {
		t.Fatalf("Expected 2 stories, got %d", len(got))
	}
	if got[0].Title != "List invoices" || got[0].Body != "**As a** freelancer" {
		t.Errorf("Unexpected first story: %+v", got[0])
	}
	if got[1].Title != "Story 2" || got[1].Body != "no title here" {
		t.Errorf("Expected fallback title, got %+v", got[1])
	}
	if SplitUserStories("no headings at all") != nil {
		t.Error("Expected nil without story headings")
	}
}

func TestFenceMarkdown(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"plain":    {"# PRD", "```markdown\n# PRD\n```"},
		"fenced":   {"```markdown\n# PRD\n```", "```markdown\n# PRD\n```"},
		"padded":   {"\n```markdown\n# PRD\n```\n", "```markdown\n# PRD\n```"},
		"unclosed": {"```markdown\n# PRD", "```markdown\n```markdown\n# PRD\n```"},
	}
	for name, tt := range tests {
		if got := fenceMarkdown(tt.in); got != tt.want {
			t.Errorf("%s: expected %q, got %q", name, tt.want, got)
		}
	}
}
