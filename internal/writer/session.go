package writer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// SessionManager creates per-session export directories under the output directory
type SessionManager struct {
	outputDir string
	logger    *slog.Logger
	now       func() time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(outputDir string, logger *slog.Logger) (*SessionManager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &SessionManager{
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// GetOutputDir returns the output directory path
func (sm *SessionManager) GetOutputDir() string {
	return sm.outputDir
}

// CreateSessionDir creates a timestamped directory for one export of a session
func (sm *SessionManager) CreateSessionDir(sessionID string) (string, error) {
	timestamp := sm.now().Format("2006-01-02T15-04-05")
	name := "session_" + timestamp
	if len(sessionID) >= 8 {
		name += "_" + sessionID[:8]
	}

	sessionDir := filepath.Join(sm.outputDir, name)
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create session directory: %w", err)
	}

	sm.logger.Info("Created session directory", "path", sessionDir)
	return sessionDir, nil
}
