package engine

import "strings"

// The engine ends its report with a "STATUS:Passed." or "STATUS:Failed."
// line (possibly followed by a failure count). parseStatusLine scans the
// report for the last such line; the second return is false when none is
// found.
func parseStatusLine(report string) (passed, found bool) {
	lines := strings.Split(report, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		rest, ok := strings.CutPrefix(line, "STATUS:")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		switch {
		case strings.HasPrefix(rest, "Passed"):
			return true, true
		case strings.HasPrefix(rest, "Failed"):
			return false, true
		}
	}
	return false, false
}
