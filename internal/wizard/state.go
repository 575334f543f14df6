package wizard

import (
	"time"

	"github.com/google/uuid"
)

// Step is a wizard stage
type Step int

const (
	StepProblem Step = iota
	StepBasics
	StepDesign
	StepIterations
	StepStories
	StepPRD
)

var stepNames = [...]string{"problem", "basics", "design", "iterations", "stories", "prd"}

func (s Step) String() string {
	if s < StepProblem || s > StepPRD {
		return "unknown"
	}
	return stepNames[s]
}

// Role tags the author of a log entry
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Message is one entry of a Q&A log. An ai entry without a question index
// is informational and never counts toward the answer quota.
type Message struct {
	Role          Role   `json:"role"`
	Content       string `json:"content"`
	Hint          string `json:"hint,omitempty"`
	QuestionIndex *int   `json:"question_index,omitempty"`
}

// IsQuestion reports whether m is a numbered question
func (m Message) IsQuestion() bool {
	return m.Role == RoleAI && m.QuestionIndex != nil
}

func userMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func infoMessage(content string) Message {
	return Message{Role: RoleAI, Content: content}
}

func questionMessage(content, hint string, index int) Message {
	return Message{Role: RoleAI, Content: content, Hint: hint, QuestionIndex: &index}
}

// Exchange is one entry of the modification log
type Exchange struct {
	Request         string `json:"request"`
	Acknowledgement string `json:"acknowledgement"`
}

// State is the whole wizard session
type State struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Step      Step      `json:"step"`

	Problem          string     `json:"problem"`
	BasicLog         []Message  `json:"basic_log"`
	DesignLog        []Message  `json:"design_log"`
	BasicSummary     string     `json:"basic_summary"`
	EnrichedDesign   string     `json:"enriched_design"`
	IterationPlan    string     `json:"iteration_plan"`
	IterationSummary string     `json:"iteration_summary"`
	UserStories      string     `json:"user_stories"`
	PRD              string     `json:"prd"`
	PRDSummary       string     `json:"prd_summary"`
	Modifications    []Exchange `json:"modifications"`

	UseRealAI bool   `json:"use_real_ai"`
	Progress  int    `json:"progress"`
	Busy      bool   `json:"busy"`
	Pending   string `json:"pending,omitempty"`

	// Notice is a non-fatal warning left by the last completed operation
	Notice string `json:"notice,omitempty"`
}

func newState(useRealAI bool, now time.Time) State {
	return State{
		SessionID:     uuid.NewString(),
		CreatedAt:     now,
		Step:          StepProblem,
		BasicLog:      []Message{},
		DesignLog:     []Message{},
		Modifications: []Exchange{},
		UseRealAI:     useRealAI,
	}
}

// clone returns a deep copy safe to hand to readers
func (s State) clone() State {
	out := s
	out.BasicLog = cloneLog(s.BasicLog)
	out.DesignLog = cloneLog(s.DesignLog)
	out.Modifications = append([]Exchange{}, s.Modifications...)
	return out
}

func cloneLog(log []Message) []Message {
	out := make([]Message, len(log))
	for i, m := range log {
		out[i] = m
		if m.QuestionIndex != nil {
			idx := *m.QuestionIndex
			out[i].QuestionIndex = &idx
		}
	}
	return out
}

// currentLog returns the Q&A log owned by the step, nil outside the Q&A rounds
func (s *State) currentLog() []Message {
	switch s.Step {
	case StepBasics:
		return s.BasicLog
	case StepDesign:
		return s.DesignLog
	default:
		return nil
	}
}

// currentResult returns the artifact a modification would rewrite
func (s *State) currentResult() string {
	switch s.Step {
	case StepIterations:
		return s.IterationPlan
	case StepStories:
		return s.UserStories
	case StepPRD:
		return s.PRD
	default:
		return ""
	}
}
