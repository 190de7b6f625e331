package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vidscribe/internal/config"
	"vidscribe/internal/language"
	"vidscribe/internal/logging"
	"vidscribe/internal/media/audio"
	"vidscribe/internal/pipeline"
	"vidscribe/internal/preflight"
	"vidscribe/internal/services"
	"vidscribe/internal/services/whisperx"
)

type rootOptions struct {
	configPath  string
	writeConfig string
	overrides   config.Overrides
	summary     bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:   "transcribe [flags] <video_path>",
		Short: "Transcribe the speech in a video file to timestamped JSON",
		Long: "transcribe extracts the audio track of a video, runs a Whisper speech model over it,\n" +
			"and prints a JSON array of {start, end, text} segments on stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.writeConfig != "" {
				if len(args) != 0 {
					return &usageError{msg: "--write-config does not take a video path"}
				}
				return nil
			}
			if len(args) != 1 {
				return &usageError{msg: fmt.Sprintf("expected exactly one video path, got %d arguments", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.writeConfig != "" {
				return writeSampleConfig(opts.writeConfig, stderr)
			}
			return transcribe(cmd.Context(), opts, args[0], stdout, stderr)
		},
	}
	rootCmd.SetOut(stderr)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.StringVar(&opts.overrides.Model, "model", "", "Model size tier (tiny, base, small, medium, large-v3, ...) or .pt checkpoint")
	flags.StringVar(&opts.overrides.Language, "language", "", "Spoken language code (default from config, en)")
	flags.StringVar(&opts.overrides.TimeFormat, "time-format", "", "Offset format: minutes_seconds or fixed_decimal")
	flags.StringVar(&opts.overrides.Backend, "backend", "", "Speech backend: whisper or whisperx")
	flags.StringVar(&opts.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&opts.summary, "summary", false, "Print a table of the segments to stderr after success")
	flags.StringVar(&opts.writeConfig, "write-config", "", "Write a sample configuration file to the given path and exit (no video path allowed)")

	return rootCmd
}

func transcribe(ctx context.Context, opts rootOptions, videoPath string, stdout, stderr io.Writer) error {
	cfg, _, _, err := config.Load(opts.configPath)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "", "load config", "", err)
	}
	if err := cfg.Apply(opts.overrides); err != nil {
		return services.Wrap(services.ErrConfiguration, "", "apply flags", "", err)
	}
	mode, err := cfg.TimeFormatMode()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "", "time format", "", err)
	}

	logger, logCloser, err := logging.NewFromConfig(cfg, stderr)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "", "configure logging", "", err)
	}
	defer logCloser.Close()

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger = logging.WithContext(ctx, logger)
	logger.Debug("configuration resolved",
		logging.String("video", videoPath),
		logging.String("backend", cfg.Transcription.Backend),
		logging.String("model", cfg.Transcription.Model),
		logging.String("language", cfg.Transcription.Language),
		logging.String("language_name", language.DisplayName(cfg.Transcription.Language)),
		logging.String("time_format", mode.String()),
		logging.Bool("cuda", cfg.CUDAEnabled()),
	)

	if err := preflight.Err(preflight.RunAll(ctx, cfg)); err != nil {
		return err
	}

	extractor := audio.NewExtractor(audio.Config{
		FFmpeg:  cfg.Tools.FFmpeg,
		FFprobe: cfg.Tools.FFprobe,
		TempDir: cfg.TempDir(),
		RunID:   runID,
	}, logger)
	transcriber := whisperx.NewService(whisperx.Config{
		Backend:       cfg.Transcription.Backend,
		Model:         cfg.Transcription.Model,
		Language:      cfg.Transcription.Language,
		CUDAEnabled:   cfg.CUDAEnabled(),
		VADMethod:     cfg.Transcription.VADMethod,
		HFToken:       cfg.Transcription.HFToken,
		WhisperBinary: cfg.Tools.Whisper,
		UVXBinary:     cfg.Tools.UVX,
		TempDir:       cfg.TempDir(),
	}, logger)

	result, err := pipeline.New(extractor, transcriber, mode, logger).Run(ctx, videoPath, stdout)
	if err != nil {
		return err
	}
	logSuccess(logger, transcriber, result)
	if opts.summary {
		fmt.Fprintln(stderr, renderSummary(result))
	}
	return nil
}

func logSuccess(logger *slog.Logger, transcriber *whisperx.Service, result pipeline.Result) {
	logger.Info("transcript emitted",
		logging.Int("segment_count", len(result.Formatted)),
		logging.Int("stream_index", result.Stream.Index),
		logging.String("stream_label", result.Stream.Label()),
		logging.Float64("media_duration", result.MediaDuration),
		logging.String("backend", transcriber.Backend()),
		logging.String("model", transcriber.Model()),
		logging.Duration("model_duration", result.Durations[pipeline.StateTranscribing]),
	)
}

func writeSampleConfig(path string, stderr io.Writer) error {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "", "write config", "", err)
	}
	if err := config.CreateSample(expanded); err != nil {
		return services.Wrap(services.ErrConfiguration, "", "write config", "", err)
	}
	fmt.Fprintf(stderr, "wrote sample configuration to %s\n", expanded)
	return nil
}
