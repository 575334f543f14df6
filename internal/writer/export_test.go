package writer

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lamim/prdforge/internal/config"
	"github.com/lamim/prdforge/internal/wizard"
	"gopkg.in/yaml.v3"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func finishedSession(t *testing.T) wizard.State {
	t.Helper()
	ctx := context.Background()
	c := wizard.New(nil, wizard.Options{Logger: discardLogger()})
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	must(c.SubmitProblem(ctx, "Freelancers lose track of unpaid invoices"))
	for round := 0; round < 2; round++ {
		for i := 0; i < wizard.RequiredAnswers; i++ {
			must(c.SubmitAnswer(ctx, "answer"))
		}
		must(c.Advance(ctx))
	}
	must(c.Advance(ctx))
	must(c.Advance(ctx))
	return c.Snapshot()
}

func TestExporter_Export(t *testing.T) {
	sessions, err := NewSessionManager(filepath.Join(t.TempDir(), "output"), discardLogger())
	if err != nil {
		t.Fatalf("Failed to create session manager: %v", err)
	}
	exporter := NewExporter(sessions, discardLogger())

	state := finishedSession(t)
	dir, files, err := exporter.Export(state)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(dir), "session_") || !strings.HasSuffix(dir, state.SessionID[:8]) {
		t.Errorf("Unexpected session dir name: %s", dir)
	}
	if len(files) != 4 {
		t.Fatalf("Expected 4 files, got %d: %v", len(files), files)
	}

	prd, err := os.ReadFile(filepath.Join(dir, PRDFile))
	if err != nil {
		t.Fatalf("Failed to read PRD: %v", err)
	}
	if !strings.HasPrefix(string(prd), "# PRD: Freelancers") {
		t.Errorf("Expected unfenced PRD, got %q", string(prd)[:40])
	}

	data, err := os.ReadFile(filepath.Join(dir, TranscriptFile))
	if err != nil {
		t.Fatalf("Failed to read transcript: %v", err)
	}
	var transcript Transcript
	if err := yaml.Unmarshal(data, &transcript); err != nil {
		t.Fatalf("Transcript is not valid YAML: %v", err)
	}
	if transcript.SessionID != state.SessionID || transcript.Step != "prd" {
		t.Errorf("Unexpected transcript header: %+v", transcript)
	}
	if len(transcript.Basics) != wizard.RequiredAnswers || len(transcript.Design) != wizard.RequiredAnswers {
		t.Errorf("Expected %d pairs per round, got %d and %d", wizard.RequiredAnswers, len(transcript.Basics), len(transcript.Design))
	}
	if transcript.Basics[0].Answer != "answer" {
		t.Errorf("Unexpected first pair: %+v", transcript.Basics[0])
	}
}

func TestExporter_PartialSession(t *testing.T) {
	sessions, err := NewSessionManager(t.TempDir(), discardLogger())
	if err != nil {
		t.Fatalf("Failed to create session manager: %v", err)
	}
	exporter := NewExporter(sessions, discardLogger())

	c := wizard.New(nil, wizard.Options{Logger: discardLogger()})
	if _, _, err := exporter.Export(c.Snapshot()); err == nil {
		t.Error("Expected error exporting an empty session")
	}

	if err := c.SubmitProblem(context.Background(), "problem"); err != nil {
		t.Fatalf("SubmitProblem failed: %v", err)
	}
	_, files, err := exporter.Export(c.Snapshot())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != TranscriptFile {
		t.Errorf("Expected only the transcript, got %v", files)
	}
}

func TestSessionManager_CreateSessionDir(t *testing.T) {
	sessions, err := NewSessionManager(t.TempDir(), discardLogger())
	if err != nil {
		t.Fatalf("Failed to create session manager: %v", err)
	}
	sessions.now = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }

	dir, err := sessions.CreateSessionDir("0123456789abcdef")
	if err != nil {
		t.Fatalf("CreateSessionDir failed: %v", err)
	}
	if filepath.Base(dir) != "session_2026-10-17T09-30-00_01234567" {
		t.Errorf("Unexpected dir name: %s", filepath.Base(dir))
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("Expected directory to exist: %v", err)
	}
}

func TestPRDMarkdown(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"fenced":   {"```markdown\n# PRD\nbody\n```", "# PRD\nbody"},
		"plain":    {"# PRD", "# PRD"},
		"unclosed": {"```markdown\n# PRD", "```markdown\n# PRD"},
		"empty":    {"", ""},
	}
	for name, tt := range tests {
		if got := PRDMarkdown(tt.in); got != tt.want {
			t.Errorf("%s: expected %q, got %q", name, tt.want, got)
		}
	}
}

func TestSetupLogger(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	cfg := config.LoggingConfig{MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

	logger, closer, err := SetupLogger(cfg, dir, slog.LevelInfo, &console)
	if err != nil {
		t.Fatalf("SetupLogger failed: %v", err)
	}

	logger.Debug("debug detail", "k", 1)
	logger.With("component", "test").Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if strings.Contains(console.String(), "debug detail") {
		t.Error("Console must respect the configured level")
	}
	if !strings.Contains(console.String(), "component=test") {
		t.Errorf("Expected console attrs, got %q", console.String())
	}

	data, err := os.ReadFile(LogPath(cfg, dir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"debug detail"`) || !strings.Contains(string(data), `"component":"test"`) {
		t.Errorf("Expected JSON records with debug detail, got %q", string(data))
	}
}
