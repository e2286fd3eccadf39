package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"miso/internal/config"
)

// SettingsOption allows callers to customize the generated test settings.
type SettingsOption func(*config.Settings)

// WithEngineCommand points the engine at a test binary.
func WithEngineCommand(command string) SettingsOption {
	return func(s *config.Settings) {
		s.Engine.Command = command
	}
}

// WithProcessors overrides the sampler processor default.
func WithProcessors(n int) SettingsOption {
	return func(s *config.Settings) {
		s.Sampler.NumProcessors = n
	}
}

// NewSettings produces default settings with the options applied.
func NewSettings(t testing.TB, opts ...SettingsOption) *config.Settings {
	t.Helper()
	settings := config.Default()
	for _, opt := range opts {
		opt(&settings)
	}
	return &settings
}

// WriteSettings encodes settings as TOML into a fresh settings directory and
// returns the file path.
func WriteSettings(t testing.TB, settings *config.Settings) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "miso")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir settings dir: %v", err)
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		t.Fatalf("marshal settings: %v", err)
	}
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}
