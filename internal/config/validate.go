package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"vidscribe/internal/language"
	"vidscribe/internal/timefmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	t := c.Transcription
	switch t.Backend {
	case BackendWhisper, BackendWhisperX:
	default:
		return fmt.Errorf("transcription.backend must be %q or %q, got %q", BackendWhisper, BackendWhisperX, t.Backend)
	}
	if !validModel(t.Model) {
		return fmt.Errorf("transcription.model %q is not a known size tier (%s) or a %s checkpoint path", t.Model, strings.Join(ModelTiers, ", "), customModelPathExt)
	}
	if language.Normalize(t.Language) == "" {
		return fmt.Errorf("transcription.language %q is not a recognized language code", t.Language)
	}
	if _, err := timefmt.ParseMode(t.TimeFormat); err != nil {
		return fmt.Errorf("transcription.time_format: %v", err)
	}
	switch t.Device {
	case DeviceCPU, DeviceCUDA:
	default:
		return fmt.Errorf("transcription.device must be %q or %q, got %q", DeviceCPU, DeviceCUDA, t.Device)
	}
	switch t.VADMethod {
	case VADMethodSilero, VADMethodPyannote:
	default:
		return fmt.Errorf("transcription.vad_method must be %q or %q, got %q", VADMethodSilero, VADMethodPyannote, t.VADMethod)
	}
	if t.Backend == BackendWhisperX && t.VADMethod == VADMethodPyannote && t.HFToken == "" {
		return errors.New("transcription.hf_token is required when vad_method is pyannote (or set HF_TOKEN)")
	}
	return nil
}

func validModel(model string) bool {
	if slices.Contains(ModelTiers, model) {
		return true
	}
	return strings.HasSuffix(model, customModelPathExt)
}

func (c *Config) validateTools() error {
	for key, value := range map[string]string{
		"tools.ffmpeg":  c.Tools.FFmpeg,
		"tools.ffprobe": c.Tools.FFprobe,
		"tools.whisper": c.Tools.Whisper,
		"tools.uvx":     c.Tools.UVX,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case LogFormatAuto, LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("logging.format must be auto, console, or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	switch c.Logging.File {
	case "stdout", "/dev/stdout", "/dev/fd/1", "/proc/self/fd/1":
		return errors.New("logging.file cannot be stdout; stdout carries the transcript")
	}
	return nil
}
