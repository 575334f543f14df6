package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	blankLineSplit    = regexp.MustCompile(`\n\s*\n`)
	iterationLine     = regexp.MustCompile(`(?s)^Iteration\s*(\d+):\s*(.+?)\s*-\s*(.+)$`)
	sectionHeading    = regexp.MustCompile(`^###\s*(.+)$`)
	storyHeadingSplit = regexp.MustCompile(`## Story \d+:`)
)

// IterationDigest is one parsed block of an iteration summary.
// Blocks that do not follow the "Iteration N: Title - body" shape keep only Raw.
type IterationDigest struct {
	Number int    `json:"number,omitempty"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
	Raw    string `json:"raw"`
}

// SectionDigest is one "### Title" block of a PRD summary
type SectionDigest struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
}

// StoryDigest is one user story split out of the story document
type StoryDigest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// QuestionHeadline returns the first line of a question, without its examples
func QuestionHeadline(content string) string {
	content = strings.TrimSpace(content)
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	return strings.TrimSpace(content)
}

// ParseIterationSummary splits a summary into per-iteration blocks
func ParseIterationSummary(summary string) []IterationDigest {
	var out []IterationDigest
	for _, block := range blocks(summary) {
		d := IterationDigest{Raw: block}
		if m := iterationLine.FindStringSubmatch(block); m != nil {
			d.Number, _ = strconv.Atoi(m[1])
			d.Title = strings.TrimSpace(m[2])
			d.Body = strings.TrimSpace(m[3])
		}
		out = append(out, d)
	}
	return out
}

// ParseSectionSummary splits a PRD summary into "### Title" sections.
// A block without a heading is kept as an untitled section.
func ParseSectionSummary(summary string) []SectionDigest {
	var out []SectionDigest
	for _, block := range blocks(summary) {
		first, rest, _ := strings.Cut(block, "\n")
		if m := sectionHeading.FindStringSubmatch(strings.TrimSpace(first)); m != nil {
			out = append(out, SectionDigest{Title: strings.TrimSpace(m[1]), Body: strings.TrimSpace(rest)})
			continue
		}
		out = append(out, SectionDigest{Body: block})
	}
	return out
}

// SplitUserStories splits the story document on "## Story N:" headings.
// Text before the first heading is dropped.
func SplitUserStories(doc string) []StoryDigest {
	parts := storyHeadingSplit.Split(doc, -1)
	if len(parts) < 2 {
		return nil
	}

	var out []StoryDigest
	for i, part := range parts[1:] {
		if strings.TrimSpace(part) == "" {
			continue
		}
		title, body, _ := strings.Cut(strings.TrimLeft(part, " \t"), "\n")
		title = strings.TrimSpace(title)
		if title == "" {
			title = fmt.Sprintf("Story %d", i+1)
		}
		out = append(out, StoryDigest{Title: title, Body: strings.TrimSpace(body)})
	}
	return out
}

func blocks(s string) []string {
	var out []string
	for _, b := range blankLineSplit.Split(strings.TrimSpace(s), -1) {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
