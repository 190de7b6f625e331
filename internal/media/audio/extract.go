package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"vidscribe/internal/logging"
	"vidscribe/internal/media/ffprobe"
	"vidscribe/internal/services"
)

const (
	stageName        = "extracting"
	sampleRate       = "16000"
	channels         = "1"
	pcmCodec         = "pcm_s16le"
	defaultFFmpeg    = "ffmpeg"
	defaultFFprobe   = "ffprobe"
	tempPrefixFormat = "vidscribe-%s-*.wav"
)

// Config captures runtime settings for audio extraction.
type Config struct {
	FFmpeg  string
	FFprobe string
	// TempDir holds the waveform; empty uses os.TempDir.
	TempDir string
	// RunID is embedded in the temporary file name.
	RunID string
}

// Extractor produces a mono 16 kHz waveform from a video container.
type Extractor struct {
	cfg           Config
	logger        *slog.Logger
	probeRunner   ffprobe.Runner
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewExtractor creates an extractor with the given configuration.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if strings.TrimSpace(cfg.FFmpeg) == "" {
		cfg.FFmpeg = defaultFFmpeg
	}
	if strings.TrimSpace(cfg.FFprobe) == "" {
		cfg.FFprobe = defaultFFprobe
	}
	return &Extractor{cfg: cfg, logger: logging.NewComponentLogger(logger, "audio")}
}

// WithProbeRunner sets a custom ffprobe runner (for testing).
func (e *Extractor) WithProbeRunner(runner ffprobe.Runner) {
	e.probeRunner = runner
}

// WithCommandRunner sets a custom ffmpeg runner (for testing).
func (e *Extractor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.commandRunner = runner
}

// Waveform is a temporary mono 16 kHz PCM file. Close removes it and may be
// called any number of times.
type Waveform struct {
	Path     string
	Stream   Selection
	Duration float64

	once     sync.Once
	closeErr error
}

// Close deletes the waveform file. A file that is already gone is not an error.
func (w *Waveform) Close() error {
	if w == nil {
		return nil
	}
	w.once.Do(func() {
		if w.Path == "" {
			return
		}
		if err := os.Remove(w.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			w.closeErr = fmt.Errorf("remove waveform: %w", err)
		}
	})
	return w.closeErr
}

// Extract probes videoPath, selects an audio stream, and decodes it into a
// temporary waveform. The caller owns the returned handle and must Close it.
func (e *Extractor) Extract(ctx context.Context, videoPath string) (*Waveform, error) {
	logger := logging.WithContext(ctx, e.logger)

	videoPath = strings.TrimSpace(videoPath)
	if videoPath == "" {
		return nil, services.Wrap(services.ErrMedia, stageName, "validate input", "video path is empty", nil)
	}
	info, err := os.Stat(videoPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, services.Wrap(services.ErrMedia, stageName, "validate input", "video file not found: "+videoPath, nil)
	case err != nil:
		return nil, services.Wrap(services.ErrMedia, stageName, "validate input", "stat "+videoPath, err)
	case info.IsDir():
		return nil, services.Wrap(services.ErrMedia, stageName, "validate input", videoPath+" is a directory", nil)
	}

	probe, err := ffprobe.InspectWith(ctx, e.probeRunner, e.cfg.FFprobe, videoPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, services.Wrap(services.ErrExternalTool, stageName, "ffprobe", "interrupted", ctxErr)
		}
		return nil, services.Wrap(services.ErrMedia, stageName, "ffprobe", "container could not be decoded", err)
	}

	logger.Debug("container probed",
		logging.Int("ffprobe.audio_streams", probe.AudioStreamCount()),
		logging.Float64("ffprobe.duration", probe.DurationSeconds()),
		logging.Any("ffprobe.size_bytes", probe.SizeBytes()),
	)

	selection := Select(probe)
	if selection.Index < 0 {
		return nil, services.Wrap(services.ErrMedia, stageName, "select stream", "no audio track in "+videoPath, nil)
	}
	logger.Debug("audio stream selected",
		logging.Int("stream_index", selection.Index),
		logging.String("stream_label", selection.Label()),
		logging.String("reason", selection.Reason),
		logging.Int("audio_streams", selection.AudioCount),
	)

	dest, err := e.createTemp()
	if err != nil {
		return nil, services.Wrap(services.ErrMedia, stageName, "create waveform", "temporary file", err)
	}
	waveform := &Waveform{Path: dest, Stream: selection, Duration: probe.DurationSeconds()}

	args := BuildExtractArgs(videoPath, selection.Index, dest)
	logger.Debug("running ffmpeg", logging.String("command", e.cfg.FFmpeg+" "+strings.Join(args, " ")))
	if err := e.run(ctx, e.cfg.FFmpeg, args...); err != nil {
		_ = waveform.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, services.Wrap(services.ErrExternalTool, stageName, "ffmpeg", "interrupted", ctxErr)
		}
		return nil, services.Wrap(services.ErrMedia, stageName, "ffmpeg", "audio extraction failed", err)
	}

	stat, err := os.Stat(dest)
	if err != nil || stat.Size() == 0 {
		_ = waveform.Close()
		return nil, services.Wrap(services.ErrMedia, stageName, "ffmpeg", "empty waveform", err)
	}
	logger.Debug("waveform ready",
		logging.String("waveform", dest),
		logging.Any("waveform_bytes", stat.Size()),
	)
	return waveform, nil
}

func (e *Extractor) createTemp() (string, error) {
	dir := e.cfg.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	runID := strings.TrimSpace(e.cfg.RunID)
	if runID == "" {
		runID = "run"
	}
	file, err := os.CreateTemp(dir, fmt.Sprintf(tempPrefixFormat, runID))
	if err != nil {
		return "", err
	}
	path := file.Name()
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

func (e *Extractor) run(ctx context.Context, name string, args ...string) error {
	if e.commandRunner != nil {
		return e.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// BuildExtractArgs returns the ffmpeg arguments that decode stream index of
// source into a mono 16 kHz PCM WAV at dest.
func BuildExtractArgs(source string, index int, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-nostdin",
		"-loglevel", "error",
		"-i", source,
		"-map", fmt.Sprintf("0:%d", index),
		"-vn",
		"-sn",
		"-dn",
		"-ac", channels,
		"-ar", sampleRate,
		"-c:a", pcmCodec,
		dest,
	}
}
