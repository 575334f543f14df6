package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lamim/prdforge/internal/wizard"
	"github.com/lamim/prdforge/internal/writer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func script(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func answers(n int, text string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = text
	}
	return out
}

func runConsole(t *testing.T, in io.Reader, exporter *writer.Exporter) (string, *wizard.Controller) {
	t.Helper()
	var out bytes.Buffer
	con := New(Options{In: in, Out: &out, Exporter: exporter, Logger: discardLogger()})
	ctrl := wizard.New(nil, wizard.Options{Logger: discardLogger(), Observer: con})

	if err := con.Run(context.Background(), ctrl); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String(), ctrl
}

func TestConsole_FullRun(t *testing.T) {
	dir := t.TempDir()
	sessions, err := writer.NewSessionManager(dir, discardLogger())
	if err != nil {
		t.Fatalf("Failed to create session manager: %v", err)
	}

	lines := []string{"Freelancers lose track of unpaid invoices"}
	lines = append(lines, answers(wizard.RequiredAnswers, "freelancers")...)
	lines = append(lines, "/next")
	lines = append(lines, answers(wizard.RequiredAnswers, "like Toss")...)
	lines = append(lines, "/next", "Merge iterations 2 and 3", "/next", "/next", "/save", "/quit", "never read")

	out, ctrl := runConsole(t, script(lines...), writer.NewExporter(sessions, discardLogger()))

	for _, want := range []string{
		"Step 0 · Problem",
		"Q1.",
		"Q6.",
		"All answers collected",
		"Step 2 · Screen and design details",
		"Iteration 1: Core feature implementation (MVP)",
		"limited in mock AI mode",
		"Enter data quickly for the first time",
		"Step 5 · Product requirements document",
		"Problem Definition",
		"Saved 4 file(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}

	if ctrl.Snapshot().Step != wizard.StepPRD {
		t.Errorf("Expected step 5, got %s", ctrl.Snapshot().Step)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected one session directory, got %v (%v)", entries, err)
	}
	if _, err := os.Stat(filepath.Join(dir, entries[0].Name(), writer.PRDFile)); err != nil {
		t.Errorf("Expected saved PRD: %v", err)
	}
}

func TestConsole_ErrorsAreNotices(t *testing.T) {
	out, ctrl := runConsole(t, script("/next", "problem", "/next", "/bogus", "/save"), nil)

	for _, want := range []string{
		"! invalid action: submit the problem statement to continue",
		"! invalid action: 0 of 6 answers collected",
		"! unknown command /bogus",
		"! saving is not configured",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
	if ctrl.Snapshot().Step != wizard.StepBasics {
		t.Errorf("Expected step 1, got %s", ctrl.Snapshot().Step)
	}
}

func TestConsole_BackAndHelp(t *testing.T) {
	out, ctrl := runConsole(t, script("problem", "first", "/back", "/help"), nil)

	if ctrl.Snapshot().Step != wizard.StepProblem {
		t.Errorf("Expected step 0 after /back, got %s", ctrl.Snapshot().Step)
	}
	if strings.Count(out, "Step 0 · Problem") != 2 {
		t.Error("Expected the problem header again after going back")
	}
	if !strings.Contains(out, "/restart") {
		t.Error("Expected help text")
	}
}

func TestConsole_EndOfInput(t *testing.T) {
	_, ctrl := runConsole(t, strings.NewReader("problem"), nil)
	if ctrl.Snapshot().Problem != "problem" {
		t.Error("Expected the unterminated last line to be processed")
	}
}

func TestConsole_Cancelled(t *testing.T) {
	var out bytes.Buffer
	con := New(Options{In: script("problem"), Out: &out, Logger: discardLogger()})
	ctrl := wizard.New(nil, wizard.Options{Logger: discardLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := con.Run(ctx, ctrl); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
