package wizard

import (
	"fmt"
	"strings"
)

// QAPair is a numbered question with the answer that followed it
type QAPair struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Pairs matches every numbered question with the first user entry after it.
// Questions that were never answered are left out.
func Pairs(log []Message) []QAPair {
	var pairs []QAPair
	for i, m := range log {
		if !m.IsQuestion() {
			continue
		}
		for _, next := range log[i+1:] {
			if next.Role == RoleUser {
				pairs = append(pairs, QAPair{Question: m.Content, Answer: next.Content})
				break
			}
		}
	}
	return pairs
}

// FormatPairs renders pairs as "Q: …\nA: …" blocks separated by a blank line
func FormatPairs(pairs []QAPair) string {
	blocks := make([]string, len(pairs))
	for i, p := range pairs {
		blocks[i] = "Q: " + p.Question + "\nA: " + p.Answer
	}
	return strings.Join(blocks, "\n\n")
}

// Transcript renders the whole log as "User: …" and "AI: …" lines
func Transcript(log []Message) string {
	lines := make([]string, len(log))
	for i, m := range log {
		speaker := "AI"
		if m.Role == RoleUser {
			speaker = "User"
		}
		lines[i] = speaker + ": " + m.Content
	}
	return strings.Join(lines, "\n")
}

// Answers returns the user entries of a log in order
func Answers(log []Message) []string {
	var answers []string
	for _, m := range log {
		if m.Role == RoleUser {
			answers = append(answers, m.Content)
		}
	}
	return answers
}

// AnswerCount counts the user entries of a log
func AnswerCount(log []Message) int {
	n := 0
	for _, m := range log {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

func numberedAnswers(answers []string, label string) string {
	lines := make([]string, len(answers))
	for i, a := range answers {
		lines[i] = fmt.Sprintf("%s %d answer: %s", label, i+1, a)
	}
	return strings.Join(lines, "\n")
}
