package writer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lamim/prdforge/internal/wizard"
	"gopkg.in/yaml.v3"
)

const (
	PRDFile        = "prd.md"
	PlanFile       = "iteration_plan.md"
	StoriesFile    = "user_stories.md"
	TranscriptFile = "transcript.yaml"
)

// Transcript is the YAML record of everything the user said and the summaries built from it
type Transcript struct {
	SessionID        string            `yaml:"session_id"`
	CreatedAt        time.Time         `yaml:"created_at"`
	ExportedAt       time.Time         `yaml:"exported_at"`
	Step             string            `yaml:"step"`
	Problem          string            `yaml:"problem"`
	Basics           []wizard.QAPair   `yaml:"basics,omitempty"`
	BasicSummary     string            `yaml:"basic_summary,omitempty"`
	Design           []wizard.QAPair   `yaml:"design,omitempty"`
	EnrichedDesign   string            `yaml:"enriched_design,omitempty"`
	IterationSummary string            `yaml:"iteration_summary,omitempty"`
	PRDSummary       string            `yaml:"prd_summary,omitempty"`
	Modifications    []wizard.Exchange `yaml:"modifications,omitempty"`
}

// Exporter writes the artifacts of a session to disk
type Exporter struct {
	sessions *SessionManager
	logger   *slog.Logger
	now      func() time.Time
}

// NewExporter creates an exporter on top of a session manager
func NewExporter(sessions *SessionManager, logger *slog.Logger) *Exporter {
	return &Exporter{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Export writes every artifact the state holds into a new session directory
// and returns the directory and the written file paths.
func (e *Exporter) Export(state wizard.State) (string, []string, error) {
	if state.Problem == "" {
		return "", nil, fmt.Errorf("nothing to export for session %s", state.SessionID)
	}

	dir, err := e.sessions.CreateSessionDir(state.SessionID)
	if err != nil {
		return "", nil, err
	}

	var written []string
	documents := []struct {
		name    string
		content string
	}{
		{PRDFile, PRDMarkdown(state.PRD)},
		{PlanFile, state.IterationPlan},
		{StoriesFile, state.UserStories},
	}
	for _, doc := range documents {
		if strings.TrimSpace(doc.content) == "" {
			continue
		}
		path := filepath.Join(dir, doc.name)
		if err := os.WriteFile(path, []byte(doc.content+"\n"), 0644); err != nil {
			return "", nil, fmt.Errorf("failed to write %s: %w", doc.name, err)
		}
		written = append(written, path)
	}

	data, err := yaml.Marshal(e.transcript(state))
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal transcript: %w", err)
	}
	path := filepath.Join(dir, TranscriptFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write transcript: %w", err)
	}
	written = append(written, path)

	e.logger.Info("Exported session", "session", state.SessionID, "dir", dir, "files", len(written))
	return dir, written, nil
}

func (e *Exporter) transcript(state wizard.State) Transcript {
	return Transcript{
		SessionID:        state.SessionID,
		CreatedAt:        state.CreatedAt,
		ExportedAt:       e.now(),
		Step:             state.Step.String(),
		Problem:          state.Problem,
		Basics:           wizard.Pairs(state.BasicLog),
		BasicSummary:     state.BasicSummary,
		Design:           wizard.Pairs(state.DesignLog),
		EnrichedDesign:   state.EnrichedDesign,
		IterationSummary: state.IterationSummary,
		PRDSummary:       state.PRDSummary,
		Modifications:    state.Modifications,
	}
}

// PRDMarkdown strips the markdown code fence the wizard stores the PRD in
func PRDMarkdown(prd string) string {
	s := strings.TrimSpace(prd)
	if !strings.HasPrefix(s, "```markdown") || !strings.HasSuffix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
