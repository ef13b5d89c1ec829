package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	processRunningCheck = isProcessRunning
	processStartTimeFn  = getProcessStartTime
	removeLogFileFn     = os.Remove
	globLogFiles        = filepath.Glob
	fileStatFn          = os.Lstat
)

// CleanupStats summarizes one cleanup pass.
type CleanupStats struct {
	Scanned int
	Deleted int
	Kept    int
	Errors  int

	DeletedFiles []string
	KeptFiles    []string
}

// CleanupOldLogs removes log files whose owning process is gone. Files
// that cannot be attributed to a pid are left alone.
func CleanupOldLogs() (CleanupStats, error) {
	var stats CleanupStats

	pattern := filepath.Join(os.TempDir(), ToolName+"-*.log")
	paths, err := globLogFiles(pattern)
	if err != nil {
		return stats, fmt.Errorf("glob %s: %w", pattern, err)
	}

	for _, path := range paths {
		stats.Scanned++

		pid, ok := pidFromLogName(filepath.Base(path))
		if !ok {
			stats.Kept++
			stats.KeptFiles = append(stats.KeptFiles, path)
			continue
		}

		if pid == os.Getpid() {
			stats.Kept++
			stats.KeptFiles = append(stats.KeptFiles, path)
			continue
		}

		if shouldDeleteLog(path, pid) {
			if err := removeLogFileFn(path); err != nil && !os.IsNotExist(err) {
				stats.Errors++
				continue
			}
			stats.Deleted++
			stats.DeletedFiles = append(stats.DeletedFiles, path)
		} else {
			stats.Kept++
			stats.KeptFiles = append(stats.KeptFiles, path)
		}
	}

	return stats, nil
}

func shouldDeleteLog(path string, pid int) bool {
	if !processRunningCheck(pid) {
		return true
	}

	// The pid is alive, but it may be a reused pid from a newer process.
	// A file last written before its pid started cannot belong to it.
	start := processStartTimeFn(pid)
	if start.IsZero() {
		return false
	}
	info, err := fileStatFn(path)
	if err != nil {
		return false
	}
	return info.ModTime().Before(start)
}

// pidFromLogName extracts the pid from "<tool>-<pid>[-suffix].log".
func pidFromLogName(name string) (int, bool) {
	prefix := ToolName + "-"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".log") {
		return 0, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".log")
	if idx := strings.IndexByte(rest, '-'); idx >= 0 {
		rest = rest[:idx]
	}
	pid, err := strconv.Atoi(rest)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
