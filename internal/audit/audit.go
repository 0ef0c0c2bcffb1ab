// Package audit appends one JSON line per query-time request for offline
// evaluation. Records are append-only: never mutated, never deleted.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// Logger serializes concurrent appends so no two records interleave within
// a single line. Appends are best-effort: a logging failure never fails the
// request it describes.
type Logger struct {
	path   string
	mu     sync.Mutex
	logger *zerolog.Logger
}

func NewLogger(path string, logger *zerolog.Logger) *Logger {
	return &Logger{path: path, logger: logger}
}

func (l *Logger) Append(record models.AuditRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.write(record); err != nil {
		l.logger.Warn().Err(err).Str("request_id", record.RequestID).Msg("audit append failed")
	}
}

func (l *Logger) write(record models.AuditRecord) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	_, err = f.Write(line)
	return err
}
