package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultExpectedChars is the response length treated as "done" by the progress estimate
	DefaultExpectedChars = 3000
	// MaxStreamProgress caps the estimate; only the caller may declare completion
	MaxStreamProgress = 95.0

	readChunkSize = 4 * 1024
)

// ErrEmptyResult is returned when a response carried no usable text
var ErrEmptyResult = errors.New("no text could be extracted from the model response")

// ProgressFunc receives a best-effort completion estimate in [0, 95]
type ProgressFunc func(percent float64)

// Decoder turns a newline-delimited JSON response body into the concatenated text
type Decoder struct {
	logger        *slog.Logger
	expectedChars int
}

// NewDecoder creates a decoder. expectedChars <= 0 selects DefaultExpectedChars.
func NewDecoder(logger *slog.Logger, expectedChars int) *Decoder {
	if expectedChars <= 0 {
		expectedChars = DefaultExpectedChars
	}
	return &Decoder{
		logger:        logger,
		expectedChars: expectedChars,
	}
}

// Decode reads r until EOF, extracting candidates[0].content.parts[0].text from
// every complete line. Lines that are blank or not valid JSON are skipped.
// A trailing fragment without a newline at EOF is discarded.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, onProgress ProgressFunc) (string, error) {
	var (
		pending []byte
		result  strings.Builder
		runes   int
	)

	chunk := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, readErr := r.Read(chunk)
		if n > 0 {
			pending = append(pending, chunk[:n]...)

			for {
				idx := bytes.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				line := pending[:idx]
				pending = pending[idx+1:]

				text := d.extractText(line)
				if text == "" {
					continue
				}
				result.WriteString(text)
				runes += utf8.RuneCountInString(text)

				if onProgress != nil {
					onProgress(d.estimate(runes))
				}
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("stream reading error: %w", readErr)
		}
	}

	if len(bytes.TrimSpace(pending)) > 0 {
		d.logger.Debug("Dropping unterminated trailing stream fragment", "bytes", len(pending))
	}

	if result.Len() == 0 {
		return "", ErrEmptyResult
	}
	return result.String(), nil
}

func (d *Decoder) extractText(line []byte) string {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return ""
	}

	var chunk GenerateContentResponse
	if err := json.Unmarshal(line, &chunk); err != nil {
		d.logger.Debug("Skipping unparseable stream line", "error", err, "bytes", len(line))
		return ""
	}
	return chunk.Text()
}

func (d *Decoder) estimate(runes int) float64 {
	p := float64(runes) / float64(d.expectedChars) * 100
	if p > MaxStreamProgress {
		return MaxStreamProgress
	}
	return p
}
