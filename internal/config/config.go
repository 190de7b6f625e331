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

	"vidscribe/internal/timefmt"
)

//go:embed sample_config.toml
var sampleConfig string

// Transcription contains the speech model settings for a run.
type Transcription struct {
	Backend    string `toml:"backend"`
	Model      string `toml:"model"`
	Language   string `toml:"language"`
	TimeFormat string `toml:"time_format"`
	Device     string `toml:"device"`
	VADMethod  string `toml:"vad_method"`
	HFToken    string `toml:"hf_token"`
}

// Tools names the external executables the pipeline shells out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
	Whisper string `toml:"whisper"`
	UVX     string `toml:"uvx"`
}

// Paths contains directory configuration.
type Paths struct {
	TempDir string `toml:"temp_dir"`
}

// Logging contains configuration for diagnostic output. Logs never go to stdout.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for a transcription run.
//
// Configuration sections by subsystem:
//   - Transcription: backend, model size tier, language, time format, device
//   - Tools: ffmpeg/ffprobe/model CLI executables
//   - Paths: temporary waveform location
//   - Logging: log format, level, and optional log file
type Config struct {
	Transcription Transcription `toml:"transcription"`
	Tools         Tools         `toml:"tools"`
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
}

// Overrides carries command-line values that take precedence over the file
// and environment. Empty fields are ignored.
type Overrides struct {
	Backend    string
	Model      string
	Language   string
	TimeFormat string
	LogLevel   string
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults apply. The returned config has all path fields
// expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Apply layers command-line overrides on top of the loaded configuration and
// re-validates the result.
func (c *Config) Apply(o Overrides) error {
	if v := strings.TrimSpace(o.Backend); v != "" {
		c.Transcription.Backend = v
	}
	if v := strings.TrimSpace(o.Model); v != "" {
		c.Transcription.Model = v
	}
	if v := strings.TrimSpace(o.Language); v != "" {
		c.Transcription.Language = v
	}
	if v := strings.TrimSpace(o.TimeFormat); v != "" {
		c.Transcription.TimeFormat = v
	}
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		c.Logging.Level = v
	}
	c.normalizeTranscription()
	c.normalizeLogging()
	return c.Validate()
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// TimeFormatMode returns the parsed time format.
func (c *Config) TimeFormatMode() (timefmt.Mode, error) {
	return timefmt.ParseMode(c.Transcription.TimeFormat)
}

// CUDAEnabled reports whether inference should run on the GPU.
func (c *Config) CUDAEnabled() bool {
	return c.Transcription.Device == DeviceCUDA
}

// TempDir returns the directory for the transient waveform file.
func (c *Config) TempDir() string {
	if c.Paths.TempDir != "" {
		return c.Paths.TempDir
	}
	return os.TempDir()
}

// BackendBinary returns the executable the configured backend runs.
func (c *Config) BackendBinary() string {
	if c.Transcription.Backend == BackendWhisperX {
		return c.Tools.UVX
	}
	return c.Tools.Whisper
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

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
