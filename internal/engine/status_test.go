package engine

import "testing"

func TestParseStatusLine(t *testing.T) {
	tests := []struct {
		name       string
		report     string
		wantPassed bool
		wantFound  bool
	}{
		{"passed", "checking...\nSTATUS:Passed.\n", true, true},
		{"failed", "STATUS:Failed.4 errors\n", false, true},
		{"failed with space", "STATUS: Failed.\n", false, true},
		{"last line wins", "STATUS:Failed.1 error\nrerun\nSTATUS:Passed.\n", true, true},
		{"no status line", "plain output\n", false, false},
		{"empty report", "", false, false},
		{"unknown verdict", "STATUS:Skipped\n", false, false},
		{"indented", "  STATUS:Passed.\n", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, found := parseStatusLine(tt.report)
			if found != tt.wantFound {
				t.Fatalf("found = %t, want %t", found, tt.wantFound)
			}
			if found && passed != tt.wantPassed {
				t.Errorf("passed = %t, want %t", passed, tt.wantPassed)
			}
		})
	}
}

func TestTailBufferKeepsLastBytes(t *testing.T) {
	buf := &tailBuffer{limit: 8}
	for _, chunk := range []string{"aaaa", "bbbb", "cccc"} {
		if _, err := buf.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if got := buf.String(); got != "bbbbcccc" {
		t.Errorf("tail = %q, want %q", got, "bbbbcccc")
	}

	big := &tailBuffer{limit: 4}
	if _, err := big.Write([]byte("0123456789")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := big.String(); got != "6789" {
		t.Errorf("tail = %q, want %q", got, "6789")
	}
}
