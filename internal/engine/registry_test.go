package engine

import (
	"strings"
	"testing"
)

func TestSelectKnownEngines(t *testing.T) {
	for _, name := range []string{"signaturetest", "apicheck", "SignatureTest", "  apicheck  "} {
		if _, err := Select(name); err != nil {
			t.Errorf("Select(%q) error = %v", name, err)
		}
	}
}

func TestSelectEmptyDefaultsToSignatureTest(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Cleanup(ResetPresetsCacheForTest)
	ResetPresetsCacheForTest()

	factory, err := Select("")
	if err != nil {
		t.Fatalf("Select(\"\") error = %v", err)
	}
	eng, err := factory()
	if err != nil {
		t.Fatalf("factory() error = %v", err)
	}
	if eng.Name() != DefaultName {
		t.Errorf("engine name = %q, want %q", eng.Name(), DefaultName)
	}
}

func TestSelectUnknownEngine(t *testing.T) {
	_, err := Select("frobnicator")
	if err == nil {
		t.Fatal("Select() error = nil, want unsupported-engine error")
	}
	if !strings.Contains(err.Error(), "frobnicator") {
		t.Errorf("error = %q, want it to name the engine", err.Error())
	}
}
