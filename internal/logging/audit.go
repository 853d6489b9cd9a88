package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// =============================================================================
// AUDIT EVENT TYPES
// =============================================================================

// AuditEventType names a conversion lifecycle event.
type AuditEventType string

const (
	AuditConvertClass  AuditEventType = "convert_class"
	AuditConvertScript AuditEventType = "convert_script"
	AuditBatchStart    AuditEventType = "batch_start"
	AuditBatchEnd      AuditEventType = "batch_end"
	AuditWatchStart    AuditEventType = "watch_start"
	AuditWatchStop     AuditEventType = "watch_stop"
)

// AuditEvent is one JSON line of the audit trail.
type AuditEvent struct {
	Timestamp  int64                  `json:"ts"`    // Unix milliseconds
	EventType  AuditEventType         `json:"event"`
	RunID      string                 `json:"run,omitempty"`
	Target     string                 `json:"target,omitempty"`
	Output     string                 `json:"output,omitempty"`
	Success    bool                   `json:"success"`
	DurationMs int64                  `json:"dur_ms"`
	Kind       string                 `json:"kind,omitempty"` // not_found, parse_failure, internal
	Error      string                 `json:"error,omitempty"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
}

// =============================================================================
// AUDIT LOGGER
// =============================================================================

var (
	auditFile *os.File
	auditMu   sync.Mutex
)

// AuditLogger writes audit events, optionally scoped to a run.
type AuditLogger struct {
	runID string
}

// InitAudit opens <logsDir>/<date>_audit.jsonl. Only called in debug mode.
func InitAudit(logsDir string) error {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		return nil // Already initialized
	}

	date := time.Now().Format("2006-01-02")
	auditPath := filepath.Join(logsDir, fmt.Sprintf("%s_audit.jsonl", date))

	file, err := os.OpenFile(auditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	auditFile = file
	return nil
}

// CloseAudit closes the audit log file
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}

// Audit returns an unscoped audit logger.
func Audit() *AuditLogger {
	return &AuditLogger{}
}

// AuditWithRun returns an audit logger that tags every event with runID.
func AuditWithRun(runID string) *AuditLogger {
	return &AuditLogger{runID: runID}
}

// Log writes an audit event. It is a no-op unless the audit file is open.
func (a *AuditLogger) Log(event AuditEvent) {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile == nil {
		return
	}

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	if event.RunID == "" {
		event.RunID = a.runID
	}

	data, err := json.Marshal(event)
	if err == nil {
		auditFile.Write(append(data, '\n'))
	}
}

// Conversion records the outcome of a single file conversion.
func (a *AuditLogger) Conversion(eventType AuditEventType, target, output string, start time.Time, kind string, err error) {
	event := AuditEvent{
		EventType:  eventType,
		Target:     target,
		Output:     output,
		Success:    err == nil,
		DurationMs: time.Since(start).Milliseconds(),
		Kind:       kind,
	}
	if err != nil {
		event.Error = err.Error()
	}
	a.Log(event)
}
