package config

import (
	"fmt"
	"os"
	"strings"

	"vidscribe/internal/language"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

// applyEnv lets environment variables override values from the config file.
func (c *Config) applyEnv() {
	if value, ok := lookupEnv(modelEnvVar); ok {
		c.Transcription.Model = value
	}
	if value, ok := lookupEnv(languageEnvVar); ok {
		c.Transcription.Language = value
	}
	if value, ok := lookupEnv(backendEnvVar); ok {
		c.Transcription.Backend = value
	}
	if value, ok := lookupEnv(timeFormatEnvVar); ok {
		c.Transcription.TimeFormat = value
	}
	if value, ok := lookupEnv(hfHubTokenEnvVar); ok {
		c.Transcription.HFToken = value
	} else if value, ok := lookupEnv(hfTokenEnvVar); ok {
		c.Transcription.HFToken = value
	}
	if value, ok := lookupEnv(tempDirEnvVar); ok {
		c.Paths.TempDir = value
	}
	if value, ok := lookupEnv(logLevelEnvVar); ok {
		c.Logging.Level = value
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.TempDir, err = expandPath(strings.TrimSpace(c.Paths.TempDir)); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	switch strings.ToLower(c.Logging.File) {
	case "stdout", "stderr":
		c.Logging.File = strings.ToLower(c.Logging.File)
		return nil
	}
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	t := &c.Transcription
	t.Backend = strings.ToLower(strings.TrimSpace(t.Backend))
	if t.Backend == "" {
		t.Backend = defaultBackend
	}
	t.Model = strings.TrimSpace(t.Model)
	if t.Model == "" {
		t.Model = defaultModel
	}
	if !strings.HasSuffix(t.Model, customModelPathExt) {
		t.Model = strings.ToLower(t.Model)
	}
	t.Language = strings.TrimSpace(t.Language)
	if t.Language == "" {
		t.Language = defaultLanguage
	}
	if normalized := language.Normalize(t.Language); normalized != "" {
		t.Language = normalized
	}
	t.TimeFormat = strings.ToLower(strings.TrimSpace(t.TimeFormat))
	if t.TimeFormat == "" {
		t.TimeFormat = defaultTimeFormat
	}
	t.Device = strings.ToLower(strings.TrimSpace(t.Device))
	if t.Device == "" {
		t.Device = defaultDevice
	}
	t.VADMethod = strings.ToLower(strings.TrimSpace(t.VADMethod))
	if t.VADMethod == "" {
		t.VADMethod = defaultVADMethod
	}
	t.HFToken = strings.TrimSpace(t.HFToken)
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = defaultString(c.Tools.FFmpeg, defaultFFmpeg)
	c.Tools.FFprobe = defaultString(c.Tools.FFprobe, defaultFFprobe)
	c.Tools.Whisper = defaultString(c.Tools.Whisper, defaultWhisper)
	c.Tools.UVX = defaultString(c.Tools.UVX, defaultUVX)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func defaultString(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
