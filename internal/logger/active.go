package logger

import "sync/atomic"

var activePtr atomic.Pointer[Logger]

// SetLogger installs the process-wide logger used by the Log* helpers.
func SetLogger(l *Logger) {
	activePtr.Store(l)
}

// CloseLogger detaches and closes the active logger, if any.
func CloseLogger() error {
	l := activePtr.Swap(nil)
	if l == nil {
		return nil
	}
	return l.Close()
}

func ActiveLogger() *Logger {
	return activePtr.Load()
}

func LogDebug(msg string) {
	if l := activePtr.Load(); l != nil {
		l.Debug(msg)
	}
}

func LogInfo(msg string) {
	if l := activePtr.Load(); l != nil {
		l.Info(msg)
	}
}

func LogWarn(msg string) {
	if l := activePtr.Load(); l != nil {
		l.Warn(msg)
	}
}

func LogError(msg string) {
	if l := activePtr.Load(); l != nil {
		l.Error(msg)
	}
}
