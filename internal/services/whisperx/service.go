package whisperx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"vidscribe/internal/logging"
	"vidscribe/internal/services"
	"vidscribe/internal/transcript"
)

const stageName = "transcribing"

// Service provides speech-to-text transcription.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = BackendWhisper
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.WhisperBinary == "" {
		cfg.WhisperBinary = WhisperCommand
	}
	if cfg.UVXBinary == "" {
		cfg.UVXBinary = UVXCommand
	}
	return &Service{cfg: cfg, logger: logging.NewComponentLogger(logger, "transcriber")}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Backend returns the configured backend name.
func (s *Service) Backend() string {
	return s.cfg.Backend
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Transcribe runs the model over the waveform at source and returns segments
// with trimmed text, ordered by start offset.
func (s *Service) Transcribe(ctx context.Context, source string) ([]transcript.Segment, error) {
	logger := logging.WithContext(ctx, s.logger)

	source = strings.TrimSpace(source)
	if source == "" {
		return nil, services.Wrap(services.ErrTranscription, stageName, "validate waveform", "waveform path is empty", nil)
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, services.Wrap(services.ErrTranscription, stageName, "validate waveform", "waveform unavailable", err)
	}
	if info.IsDir() || info.Size() == 0 {
		return nil, services.Wrap(services.ErrTranscription, stageName, "validate waveform", "waveform is empty", nil)
	}

	outputDir, err := os.MkdirTemp(s.cfg.TempDir, "vidscribe-model-*")
	if err != nil {
		return nil, services.Wrap(services.ErrTranscription, stageName, "prepare output", "create output directory", err)
	}
	defer os.RemoveAll(outputDir)

	binary, args := s.command(source, outputDir)
	logger.Debug("running speech model",
		logging.String("backend", s.cfg.Backend),
		logging.String("model", s.cfg.Model),
		logging.String("language", s.cfg.Language),
		logging.String("command", binary+" "+strings.Join(redact(args), " ")),
	)
	started := time.Now()
	if err := s.run(ctx, binary, args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, services.Wrap(services.ErrExternalTool, stageName, s.cfg.Backend, "interrupted", ctxErr)
		}
		return nil, services.Wrap(services.ErrTranscription, stageName, s.cfg.Backend, "model run failed", err)
	}

	jsonPath := filepath.Join(outputDir, strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))+".json")
	raw, err := LoadSegments(jsonPath)
	if err != nil {
		return nil, services.Wrap(services.ErrTranscription, stageName, "load segments", filepath.Base(jsonPath), err)
	}

	segments := make([]transcript.Segment, 0, len(raw))
	for _, seg := range raw {
		segments = append(segments, transcript.Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	segments = transcript.Normalize(segments)
	logger.Debug("speech model finished",
		logging.Int("segment_count", len(segments)),
		logging.Duration("model_duration", time.Since(started)),
	)
	return segments, nil
}

func (s *Service) command(source, outputDir string) (string, []string) {
	if s.cfg.Backend == BackendWhisperX {
		return s.cfg.UVXBinary, s.buildWhisperXArgs(source, outputDir)
	}
	return s.cfg.WhisperBinary, s.buildWhisperArgs(source, outputDir)
}

// buildWhisperArgs constructs the openai-whisper CLI arguments.
func (s *Service) buildWhisperArgs(source, outputDir string) []string {
	device := CPUDevice
	fp16 := "False"
	if s.cfg.CUDAEnabled {
		device = CUDADevice
		fp16 = "True"
	}
	return []string{
		source,
		"--model", s.cfg.Model,
		"--language", s.cfg.Language,
		"--task", "transcribe",
		"--output_format", OutputFormat,
		"--output_dir", outputDir,
		"--verbose", "False",
		"--fp16", fp16,
		"--device", device,
	}
}

// buildWhisperXArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildWhisperXArgs(source, outputDir string) []string {
	args := make([]string, 0, 40)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.cfg.Model,
		"--language", s.cfg.Language,
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--vad_onset", VADOnset,
		"--vad_offset", VADOffset,
		"--beam_size", BeamSize,
		"--temperature", Temperature,
		"--print_progress", "False",
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}

func redact(args []string) []string {
	out := append([]string(nil), args...)
	for i := 0; i+1 < len(out); i++ {
		if out[i] == "--hf_token" {
			out[i+1] = "***"
		}
	}
	return out
}
