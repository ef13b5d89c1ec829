package engine

import (
	"fmt"
	"strings"
)

// Factory builds the engine for one task run.
type Factory func() (Engine, error)

const DefaultName = "signaturetest"

var registry = map[string]Factory{
	"signaturetest": func() (Engine, error) { return fromPreset("signaturetest") },
	"apicheck":      func() (Engine, error) { return fromPreset("apicheck") },
}

// Registry exposes the available engines. Intended for internal inspection/tests.
func Registry() map[string]Factory {
	return registry
}

func Select(name string) (Factory, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultName
	}
	if factory, ok := registry[key]; ok {
		return factory, nil
	}
	return nil, fmt.Errorf("unsupported engine %q", name)
}

func fromPreset(name string) (Engine, error) {
	preset, ok := ResolvePreset(name)
	if !ok {
		return nil, fmt.Errorf("no preset configured for engine %q", name)
	}
	return NewExecEngine(name, preset), nil
}
