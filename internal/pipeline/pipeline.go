package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"vidscribe/internal/logging"
	"vidscribe/internal/media/audio"
	"vidscribe/internal/services"
	"vidscribe/internal/timefmt"
	"vidscribe/internal/transcript"
)

// Extractor produces the temporary waveform for a video.
type Extractor interface {
	Extract(ctx context.Context, videoPath string) (*audio.Waveform, error)
}

// Transcriber turns a waveform into ordered segments.
type Transcriber interface {
	Transcribe(ctx context.Context, waveformPath string) ([]transcript.Segment, error)
}

// Result summarizes a completed run.
type Result struct {
	State     State
	Stream    audio.Selection
	Segments  []transcript.Segment
	Formatted []transcript.FormattedSegment
	Inverted  []int
	Durations map[State]time.Duration

	// MediaDuration is the container duration in seconds reported by ffprobe.
	MediaDuration float64
}

// Pipeline wires the stages for a single invocation.
type Pipeline struct {
	extractor   Extractor
	transcriber Transcriber
	mode        timefmt.Mode
	logger      *slog.Logger
}

// New constructs a pipeline. A nil logger discards output.
func New(extractor Extractor, transcriber Transcriber, mode timefmt.Mode, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transcriber: transcriber,
		mode:        mode,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run transcribes videoPath and writes the JSON document to out. On error,
// out has not been written to.
func (p *Pipeline) Run(ctx context.Context, videoPath string, out io.Writer) (Result, error) {
	result := Result{State: StateStart, Durations: make(map[State]time.Duration, 3)}
	if p.extractor == nil || p.transcriber == nil {
		result.State = StateFailed
		return result, services.Wrap(services.ErrConfiguration, "", "pipeline", "extractor and transcriber are required", nil)
	}
	p.transition(ctx, &result, StateStart)

	var waveform *audio.Waveform
	defer func() {
		if err := waveform.Close(); err != nil {
			logging.WarnWithContext(logging.WithContext(ctx, p.logger), "waveform cleanup failed", "waveform_cleanup",
				logging.Error(err),
				logging.Alert("temporary waveform left on disk"),
				logging.String(logging.FieldErrorHint, "remove the temporary file manually"),
			)
		}
	}()

	err := p.stage(ctx, &result, StateExtracting, func(stageCtx context.Context) error {
		var err error
		waveform, err = p.extractor.Extract(stageCtx, videoPath)
		if err != nil {
			return err
		}
		result.Stream = waveform.Stream
		result.MediaDuration = waveform.Duration
		return nil
	})
	if err != nil {
		return result, err
	}

	err = p.stage(ctx, &result, StateTranscribing, func(stageCtx context.Context) error {
		segments, err := p.transcriber.Transcribe(stageCtx, waveform.Path)
		if err != nil {
			return err
		}
		result.Segments = segments
		return nil
	})
	if err != nil {
		return result, err
	}

	err = p.stage(ctx, &result, StateFormatting, func(stageCtx context.Context) error {
		result.Inverted = transcript.Inverted(result.Segments)
		logger := logging.WithContext(stageCtx, p.logger)
		for _, idx := range result.Inverted {
			seg := result.Segments[idx]
			logging.WarnWithContext(logger, "segment ends before it starts", "segment_inverted",
				logging.Int("index", idx),
				logging.Float64("start", seg.Start),
				logging.Float64("end", seg.End),
				logging.Float64("span", seg.Duration()),
			)
		}
		formatted, err := transcript.Format(result.Segments, p.mode)
		if err != nil {
			return fmt.Errorf("format offsets: %w", err)
		}
		result.Formatted = formatted
		return transcript.Encode(out, formatted)
	})
	if err != nil {
		return result, err
	}

	p.transition(ctx, &result, StateEmitted)
	return result, nil
}

func (p *Pipeline) stage(ctx context.Context, result *Result, state State, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		p.fail(ctx, result, state, err)
		return services.Wrap(services.ErrExternalTool, state.String(), "", "interrupted", err)
	}
	stageCtx := services.WithStage(ctx, state.String())
	p.transition(stageCtx, result, state)
	started := time.Now()
	if err := fn(stageCtx); err != nil {
		p.fail(stageCtx, result, state, err)
		return err
	}
	elapsed := time.Since(started)
	result.Durations[state] = elapsed
	logging.WithContext(stageCtx, p.logger).Debug("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("stage_duration", elapsed),
	)
	return nil
}

func (p *Pipeline) transition(ctx context.Context, result *Result, next State) {
	prev := result.State
	result.State = next
	logging.WithContext(ctx, p.logger).Debug("state transition",
		logging.String(logging.FieldEventType, "state_transition"),
		logging.String("from", prev.String()),
		logging.String("to", next.String()),
		logging.Bool("terminal", next.Terminal()),
	)
}

func (p *Pipeline) fail(ctx context.Context, result *Result, state State, err error) {
	p.transition(ctx, result, StateFailed)
	logging.WithContext(ctx, p.logger).Debug("stage failed",
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.String("failed_stage", state.String()),
		logging.Error(err),
	)
}
