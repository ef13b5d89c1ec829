// Package logger provides a per-process structured log file plus cleanup
// of files left behind by dead runs.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const recentErrorLimit = 50

// Logger writes structured entries to a per-process file. Safe for
// concurrent use.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
	path string

	mu     sync.Mutex
	recent []string
	closed bool
}

func NewLogger() (*Logger, error) {
	return NewLoggerWithSuffix("")
}

// NewLoggerWithSuffix creates the log file under the temp dir, named after
// the tool and the current pid so cleanup can tell live runs from dead
// ones. An optional suffix distinguishes multiple logs within one process.
func NewLoggerWithSuffix(suffix string) (*Logger, error) {
	name := fmt.Sprintf("%s-%d", ToolName, os.Getpid())
	if s := SanitizeLogSuffix(suffix); s != "" {
		name += "-" + s
	}
	path := filepath.Join(os.TempDir(), name+".log")

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) // #nosec G304 -- path is built from the tool name and pid
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	zl := zerolog.New(zerolog.SyncWriter(file)).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &Logger{zl: zl, file: file, path: path}, nil
}

func (l *Logger) Path() string { return l.path }

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }

func (l *Logger) Error(msg string) {
	l.zl.Error().Msg(msg)
	l.mu.Lock()
	l.recent = append(l.recent, msg)
	if len(l.recent) > recentErrorLimit {
		l.recent = l.recent[len(l.recent)-recentErrorLimit:]
	}
	l.mu.Unlock()
}

// ExtractRecentErrors returns up to n of the most recent error messages,
// oldest first.
func (l *Logger) ExtractRecentErrors(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || len(l.recent) == 0 {
		return nil
	}
	if n > len(l.recent) {
		n = len(l.recent)
	}
	out := make([]string, n)
	copy(out, l.recent[len(l.recent)-n:])
	return out
}

// Flush forces buffered entries to disk.
func (l *Logger) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.file == nil {
		return
	}
	_ = l.file.Sync()
}

// Close stops the logger. The file is kept on disk for debugging; callers
// that want it gone use RemoveLogFile afterwards.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.file == nil {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

func (l *Logger) RemoveLogFile() error {
	if err := removeLogFileFn(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SanitizeLogSuffix keeps only characters that are safe in a file name.
func SanitizeLogSuffix(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	s := b.String()
	const maxSuffixLen = 48
	if len(s) > maxSuffixLen {
		s = s[:maxSuffixLen]
	}
	return s
}
