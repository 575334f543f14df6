package api

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// chunkReader returns one predefined chunk per Read call
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func decode(t *testing.T, chunks []string, onProgress ProgressFunc) (string, error) {
	t.Helper()
	d := NewDecoder(testLogger(), DefaultExpectedChars)
	return d.Decode(context.Background(), &chunkReader{chunks: chunks}, onProgress)
}

func TestDecode_SplitAcrossChunks(t *testing.T) {
	chunks := []string{
		`{"candidates":[{"content":{"parts":[{"text":"Hel`,
		`lo"}]}}]}` + "\n" + `{"candidates":[{"content":{"parts":[{"text":" World"}]}}]}` + "\n",
		"",
	}

	got, err := decode(t, chunks, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != "Hello World" {
		t.Errorf("Expected 'Hello World', got '%s'", got)
	}
}

func TestDecode_ChunkBoundaryIndependence(t *testing.T) {
	fragments := []string{"Iteration 1", ": MVP", " - 한국어 텍스트", "\nnext line"}
	var stream strings.Builder
	var want strings.Builder
	for _, f := range fragments {
		stream.WriteString(textLine(f) + "\n")
		want.WriteString(f)
	}
	full := stream.String()

	for _, size := range []int{1, 2, 3, 7, 16, 64, len(full)} {
		var chunks []string
		for i := 0; i < len(full); i += size {
			end := min(i+size, len(full))
			chunks = append(chunks, full[i:end])
		}

		got, err := decode(t, chunks, nil)
		if err != nil {
			t.Fatalf("chunk size %d: unexpected error %v", size, err)
		}
		if got != want.String() {
			t.Errorf("chunk size %d: expected %q, got %q", size, want.String(), got)
		}
	}
}

func TestDecode_MalformedLinesSkipped(t *testing.T) {
	clean := textLine("alpha") + "\n" + textLine("beta") + "\n"
	noisy := textLine("alpha") + "\nnot json\n" + `{"candidates":` + "\n\n" + textLine("beta") + "\n" + `[1,2]` + "\n"

	want, err := decode(t, []string{clean}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	got, err := decode(t, []string{noisy}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != want {
		t.Errorf("Malformed lines changed the result: %q vs %q", got, want)
	}
}

func TestDecode_InterleavedInvalidLine(t *testing.T) {
	got, err := decode(t, []string{textLine("valid") + "\nnot json\n"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != "valid" {
		t.Errorf("Expected 'valid', got '%s'", got)
	}
}

func TestDecode_ProgressMonotonicAndCapped(t *testing.T) {
	var chunks []string
	for i := 0; i < 40; i++ {
		chunks = append(chunks, textLine(strings.Repeat("x", 100))+"\n")
	}

	var updates []float64
	got, err := decode(t, chunks, func(p float64) { updates = append(updates, p) })
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(got) != 4000 {
		t.Errorf("Expected 4000 chars, got %d", len(got))
	}
	if len(updates) != 40 {
		t.Fatalf("Expected one update per fragment (40), got %d", len(updates))
	}

	prev := -1.0
	for i, p := range updates {
		if p < prev {
			t.Errorf("Progress decreased at %d: %v < %v", i, p, prev)
		}
		if p > MaxStreamProgress {
			t.Errorf("Progress above cap at %d: %v", i, p)
		}
		prev = p
	}
	if updates[len(updates)-1] != MaxStreamProgress {
		t.Errorf("Expected final estimate to reach the cap, got %v", updates[len(updates)-1])
	}
	if updates[0] <= 3.0 || updates[0] >= 3.5 {
		t.Errorf("Expected first estimate near 100/3000*100, got %v", updates[0])
	}
	for i := 29; i < len(updates); i++ {
		if updates[i] != MaxStreamProgress {
			t.Errorf("Expected capped estimate at fragment %d, got %v", i, updates[i])
		}
	}
}

func TestDecode_EmptyResult(t *testing.T) {
	tests := map[string][]string{
		"no input":        nil,
		"only blanks":     {"\n\n   \n"},
		"no text parts":   {`{"candidates":[{"content":{"parts":[]}}]}` + "\n"},
		"empty text":      {textLine("") + "\n"},
		"only garbage":    {"garbage\n{broken\n"},
		"unterminated":    {textLine("never finished")},
		"usage only line": {`{"usageMetadata":{"totalTokenCount":5}}` + "\n"},
	}

	for name, chunks := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decode(t, chunks, nil)
			if !errors.Is(err, ErrEmptyResult) {
				t.Errorf("Expected ErrEmptyResult, got %v", err)
			}
		})
	}
}

func TestDecode_ReadError(t *testing.T) {
	d := NewDecoder(testLogger(), 0)
	r := io.MultiReader(strings.NewReader(textLine("partial")+"\n"), &failingReader{})

	_, err := d.Decode(context.Background(), r, nil)
	if err == nil || errors.Is(err, ErrEmptyResult) {
		t.Fatalf("Expected read error, got %v", err)
	}
}

func TestDecode_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDecoder(testLogger(), 0)
	_, err := d.Decode(ctx, strings.NewReader(textLine("x")+"\n"), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}
