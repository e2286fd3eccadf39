package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_settings.toml
var sampleSettings string

// ErrSettingsDirNotFound reports that the directory expected to hold the
// settings file does not exist.
var ErrSettingsDirNotFound = errors.New("settings directory not found")

// Engine describes the external quantification program.
type Engine struct {
	Command        string `toml:"command"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Cluster contains batch scheduler settings forwarded to the engine.
type Cluster struct {
	SubmitCommand string `toml:"submit_command"`
	Queue         string `toml:"queue"`
	ArraySubmit   bool   `toml:"array_submit"`
}

// Sampler contains inference parameters consumed by the engine.
type Sampler struct {
	BurnIn        int `toml:"burn_in"`
	Lag           int `toml:"lag"`
	NumIters      int `toml:"num_iters"`
	NumChains     int `toml:"num_chains"`
	NumProcessors int `toml:"num_processors"`
}

// Data contains read filtering settings.
type Data struct {
	FilterResults bool   `toml:"filter_results"`
	MinEventReads int    `toml:"min_event_reads"`
	Strand        string `toml:"strand"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Settings encapsulates every value loaded from the settings file.
//
// Sections:
//   - Engine: quantification program and timeout
//   - Cluster: scheduler submit command and queue
//   - Sampler: inference iterations and local processor default
//   - Data: event filtering and library strandedness
//   - Logging: log format and level
type Settings struct {
	Engine  Engine  `toml:"engine"`
	Cluster Cluster `toml:"cluster"`
	Sampler Sampler `toml:"sampler"`
	Data    Data    `toml:"data"`
	Logging Logging `toml:"logging"`
}

// DefaultSettingsPath returns the absolute path of the default settings file.
func DefaultSettingsPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return expandPath(filepath.Join(base, "miso", defaultSettingsFile))
	}
	return expandPath(filepath.Join("~", ".config", "miso", defaultSettingsFile))
}

// Load locates, parses, and validates a settings file. The settings directory
// must exist; a missing file inside it yields the defaults. It returns the
// settings, the resolved file path, and whether the file existed.
func Load(path string) (*Settings, string, bool, error) {
	settings := Default()

	resolvedPath, exists, err := resolveSettingsPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open settings: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&settings); err != nil {
			return nil, "", false, fmt.Errorf("parse settings %s: %w", resolvedPath, err)
		}
	}

	settings.normalize()

	if err := settings.Validate(); err != nil {
		return nil, "", false, err
	}

	return &settings, resolvedPath, exists, nil
}

func resolveSettingsPath(path string) (string, bool, error) {
	var (
		resolved string
		err      error
	)
	if strings.TrimSpace(path) != "" {
		resolved, err = expandPath(strings.TrimSpace(path))
	} else {
		resolved, err = DefaultSettingsPath()
	}
	if err != nil {
		return "", false, err
	}

	dir := filepath.Dir(resolved)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("%w: %s", ErrSettingsDirNotFound, dir)
		}
		return "", false, fmt.Errorf("stat settings directory: %w", err)
	}
	if !info.IsDir() {
		return "", false, fmt.Errorf("%w: %s is not a directory", ErrSettingsDirNotFound, dir)
	}

	info, err = os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return resolved, false, nil
		}
		return "", false, fmt.Errorf("stat settings: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("settings path %s is a directory", resolved)
	}
	return resolved, true, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample settings file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleSettings), 0o644); err != nil {
		return fmt.Errorf("write sample settings: %w", err)
	}
	return nil
}

// EngineCommand returns the quantification program name.
func (s *Settings) EngineCommand() string {
	if s == nil || strings.TrimSpace(s.Engine.Command) == "" {
		return defaultEngineCommand
	}
	return s.Engine.Command
}
