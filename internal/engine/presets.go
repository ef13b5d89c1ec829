package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ilogger "github.com/dbessono/sigtest/internal/logger"

	"github.com/goccy/go-json"
)

// Preset describes how one engine is launched: the executable, the leading
// arguments that pick the engine's command, and extra environment.
type Preset struct {
	Command     string            `json:"command"`
	Args        []string          `json:"args,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Description string            `json:"description,omitempty"`
}

type PresetsConfig struct {
	DefaultEngine string            `json:"default_engine"`
	Engines       map[string]Preset `json:"engines"`
}

var defaultPresetsConfig = PresetsConfig{
	DefaultEngine: DefaultName,
	Engines: map[string]Preset{
		"signaturetest": {Command: "sigtest", Args: []string{"test"}, Description: "Full signature compatibility test"},
		"apicheck":      {Command: "sigtest", Args: []string{"apicheck"}, Description: "Lightweight API check"},
	},
}

var (
	presetsOnce   sync.Once
	presetsCached *PresetsConfig
)

func presetsConfig() *PresetsConfig {
	presetsOnce.Do(func() {
		presetsCached = loadPresetsConfig()
	})
	if presetsCached == nil {
		return &defaultPresetsConfig
	}
	return presetsCached
}

func loadPresetsConfig() *PresetsConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		ilogger.LogWarn(fmt.Sprintf("Failed to resolve home directory for engine presets: %v; using defaults", err))
		return &defaultPresetsConfig
	}

	configDir := filepath.Clean(filepath.Join(home, ".sigtask"))
	configPath := filepath.Clean(filepath.Join(configDir, "engines.json"))
	rel, err := filepath.Rel(configDir, configPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return &defaultPresetsConfig
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- path is fixed under user home and validated to stay within configDir
	if err != nil {
		if !os.IsNotExist(err) {
			ilogger.LogWarn(fmt.Sprintf("Failed to read engine presets %s: %v; using defaults", configPath, err))
		}
		return &defaultPresetsConfig
	}

	var cfg PresetsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		ilogger.LogWarn(fmt.Sprintf("Failed to parse engine presets %s: %v; using defaults", configPath, err))
		return &defaultPresetsConfig
	}

	cfg.DefaultEngine = strings.TrimSpace(cfg.DefaultEngine)
	if cfg.DefaultEngine == "" {
		cfg.DefaultEngine = defaultPresetsConfig.DefaultEngine
	}

	// Normalize keys so lookups can be case-insensitive, then merge in the
	// built-in presets for names the file does not override.
	normalized := make(map[string]Preset, len(cfg.Engines))
	for k, v := range cfg.Engines {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		normalized[key] = v
	}
	for name, preset := range defaultPresetsConfig.Engines {
		if _, exists := normalized[name]; !exists {
			normalized[name] = preset
		}
	}
	cfg.Engines = normalized

	return &cfg
}

// ResolvePreset looks up the launch settings for an engine name.
func ResolvePreset(name string) (Preset, bool) {
	cfg := presetsConfig()
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = strings.ToLower(strings.TrimSpace(cfg.DefaultEngine))
	}
	if key == "" {
		return Preset{}, false
	}
	preset, ok := cfg.Engines[key]
	return preset, ok
}

func ResetPresetsCacheForTest() {
	presetsCached = nil
	presetsOnce = sync.Once{}
}
