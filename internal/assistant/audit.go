package assistant

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditSink records commands no rule recognized.
type AuditSink interface {
	Unrecognized(at time.Time, command string) error
}

// auditTimeFormat is the timestamp written before each command.
const auditTimeFormat = "2006-01-02 15:04:05.000000"

// FileAudit appends "<timestamp>: <command>" lines to a file.
type FileAudit struct {
	mu   sync.Mutex
	path string
}

// NewFileAudit creates a sink writing to path. The file is created on first write.
func NewFileAudit(path string) *FileAudit {
	return &FileAudit{path: path}
}

// Path returns the file the sink appends to.
func (a *FileAudit) Path() string {
	return a.path
}

// Unrecognized appends one line for command.
func (a *FileAudit) Unrecognized(at time.Time, command string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.path), 0700); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s: %s\n", at.Format(auditTimeFormat), command); err != nil {
		f.Close()
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return f.Close()
}

type nopAudit struct{}

func (nopAudit) Unrecognized(time.Time, string) error { return nil }
