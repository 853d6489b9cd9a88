// Package logging provides config-driven categorized logging for javaxify.
// Logs are written to .javaxify/logs/ with one file per day.
// Logging is controlled by debug_mode in the config - when false, no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"javaxify/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup, config loading
	CategoryExtract   Category = "extract"   // Placeholder extraction and partitioning
	CategoryGenerate  Category = "generate"  // Class and script emission
	CategoryParse     Category = "parse"     // Structural parsing of class text
	CategoryLocate    Category = "locate"    // Procedure selection
	CategoryWorkspace Category = "workspace" // File persistence, batch runs
	CategoryWatch     Category = "watch"     // File watcher events
)

// Logger is a category-scoped printf-style logger.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex

	base    = zap.NewNop()
	logFile *os.File
	cfg     config.LoggingConfig
	cfgMu   sync.RWMutex
)

// Initialize sets up file logging under <ws>/.javaxify/logs.
// Should be called once at startup with the workspace path.
func Initialize(ws string, lc config.LoggingConfig) error {
	if ws == "" {
		return fmt.Errorf("workspace path required")
	}

	CloseAll()

	if !lc.DebugMode {
		setCore(nil, lc)
		return nil // Silent no-op in production mode
	}

	logsDir := filepath.Join(ws, ".javaxify", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_javaxify.log", date))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if lc.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	setCore(zapcore.NewCore(enc, zapcore.AddSync(file), parseLevel(lc.Level)), lc)

	loggersMu.Lock()
	logFile = file
	loggersMu.Unlock()

	if err := InitAudit(logsDir); err != nil {
		Get(CategoryBoot).Warn("audit trail disabled: %v", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== javaxify logging initialized ===")
	boot.Info("Workspace: %s", ws)
	boot.Info("Log file: %s", logPath)
	boot.Info("Log level: %s", lc.Level)
	return nil
}

// UseCore routes all category loggers to the given core.
// Tests use it with zaptest/observer.
func UseCore(core zapcore.Core, lc config.LoggingConfig) {
	CloseAll()
	setCore(core, lc)
}

func setCore(core zapcore.Core, lc config.LoggingConfig) {
	cfgMu.Lock()
	cfg = lc
	if core == nil {
		base = zap.NewNop()
	} else {
		base = zap.New(core)
	}
	cfgMu.Unlock()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return cfg.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}

	cfgMu.RLock()
	named := base.Named(string(category))
	cfgMu.RUnlock()

	l := &Logger{category: category, sugar: named.Sugar()}
	loggers[category] = l
	return l
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// WithFields returns a logger that attaches the given key-value pairs to every entry.
func (l *Logger) WithFields(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// CloseAll flushes and closes the log file (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	cfgMu.RLock()
	_ = base.Sync()
	cfgMu.RUnlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	loggers = make(map[Category]*Logger)

	CloseAudit()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// ExtractDebug logs debug to the extract category
func ExtractDebug(format string, args ...interface{}) {
	Get(CategoryExtract).Debug(format, args...)
}

// GenerateDebug logs debug to the generate category
func GenerateDebug(format string, args ...interface{}) {
	Get(CategoryGenerate).Debug(format, args...)
}

// ParseDebug logs debug to the parse category
func ParseDebug(format string, args ...interface{}) {
	Get(CategoryParse).Debug(format, args...)
}

// LocateDebug logs debug to the locate category
func LocateDebug(format string, args ...interface{}) {
	Get(CategoryLocate).Debug(format, args...)
}

// Workspace logs to the workspace category
func Workspace(format string, args ...interface{}) {
	Get(CategoryWorkspace).Info(format, args...)
}

// WorkspaceDebug logs debug to the workspace category
func WorkspaceDebug(format string, args ...interface{}) {
	Get(CategoryWorkspace).Debug(format, args...)
}

// Watch logs to the watch category
func Watch(format string, args ...interface{}) {
	Get(CategoryWatch).Info(format, args...)
}

// WatchDebug logs debug to the watch category
func WatchDebug(format string, args ...interface{}) {
	Get(CategoryWatch).Debug(format, args...)
}
