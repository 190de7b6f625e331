package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"vidscribe/internal/logging"
	"vidscribe/internal/services"
)

const probeWithAudio = `{"streams":[{"index":0,"codec_type":"video"},{"index":1,"codec_type":"audio","tags":{"language":"spa"}},{"index":2,"codec_type":"audio","tags":{"language":"eng"}}],"format":{"duration":"85.0"}}`

const probeWithoutAudio = `{"streams":[{"index":0,"codec_type":"video"}],"format":{"duration":"10.0"}}`

type fixture struct {
	extractor  *Extractor
	tempDir    string
	video      string
	ffmpegArgs []string
}

func newFixture(t *testing.T, probeJSON string, write []byte, ffmpegErr error) *fixture {
	t.Helper()
	base := t.TempDir()
	f := &fixture{tempDir: filepath.Join(base, "tmp"), video: filepath.Join(base, "clip.mp4")}
	if err := os.MkdirAll(f.tempDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(f.video, []byte("video"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	f.extractor = NewExtractor(Config{TempDir: f.tempDir, RunID: "abc123"}, logging.NewNop())
	f.extractor.WithProbeRunner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte(probeJSON), nil
	})
	f.extractor.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		f.ffmpegArgs = args
		if name != "ffmpeg" {
			t.Errorf("expected default ffmpeg binary, got %q", name)
		}
		if ffmpegErr != nil {
			return ffmpegErr
		}
		return os.WriteFile(args[len(args)-1], write, 0o644)
	})
	return f
}

func (f *fixture) leftovers(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.tempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestExtractProducesWaveform(t *testing.T) {
	f := newFixture(t, probeWithAudio, []byte("RIFF....WAVE"), nil)

	waveform, err := f.extractor.Extract(context.Background(), f.video)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if filepath.Dir(waveform.Path) != f.tempDir {
		t.Fatalf("waveform not in temp dir: %s", waveform.Path)
	}
	name := filepath.Base(waveform.Path)
	if !strings.HasPrefix(name, "vidscribe-abc123-") || !strings.HasSuffix(name, ".wav") {
		t.Fatalf("unexpected waveform name %q", name)
	}
	if waveform.Stream.Index != 2 || waveform.Duration != 85 {
		t.Fatalf("unexpected waveform metadata: stream=%d duration=%v", waveform.Stream.Index, waveform.Duration)
	}
	for _, want := range [][]string{{"-map", "0:2"}, {"-ac", "1"}, {"-ar", "16000"}, {"-c:a", "pcm_s16le"}} {
		idx := slices.Index(f.ffmpegArgs, want[0])
		if idx < 0 || idx+1 >= len(f.ffmpegArgs) || f.ffmpegArgs[idx+1] != want[1] {
			t.Fatalf("expected %v in ffmpeg args %v", want, f.ffmpegArgs)
		}
	}

	if err := waveform.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if _, err := os.Stat(waveform.Path); !os.IsNotExist(err) {
		t.Fatalf("expected waveform to be removed, stat err=%v", err)
	}
	if err := waveform.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
}

func TestExtractWithoutAudioIsMediaError(t *testing.T) {
	f := newFixture(t, probeWithoutAudio, []byte("x"), nil)
	waveform, err := f.extractor.Extract(context.Background(), f.video)
	if !errors.Is(err, services.ErrMedia) {
		t.Fatalf("expected ErrMedia, got %v", err)
	}
	if waveform != nil {
		t.Fatal("expected nil waveform")
	}
	if f.ffmpegArgs != nil {
		t.Fatal("ffmpeg should not run without an audio stream")
	}
	if left := f.leftovers(t); len(left) != 0 {
		t.Fatalf("expected no temp files, found %v", left)
	}
}

func TestExtractFailureRemovesTempFile(t *testing.T) {
	f := newFixture(t, probeWithAudio, nil, errors.New("ffmpeg: exit status 1: decode error"))
	if _, err := f.extractor.Extract(context.Background(), f.video); !errors.Is(err, services.ErrMedia) {
		t.Fatalf("expected ErrMedia, got %v", err)
	}
	if left := f.leftovers(t); len(left) != 0 {
		t.Fatalf("expected temp file cleanup, found %v", left)
	}
}

func TestExtractEmptyOutputIsMediaError(t *testing.T) {
	f := newFixture(t, probeWithAudio, []byte{}, nil)
	_, err := f.extractor.Extract(context.Background(), f.video)
	if !errors.Is(err, services.ErrMedia) || !strings.Contains(err.Error(), "empty waveform") {
		t.Fatalf("expected empty waveform media error, got %v", err)
	}
	if left := f.leftovers(t); len(left) != 0 {
		t.Fatalf("expected temp file cleanup, found %v", left)
	}
}

func TestExtractInvalidInput(t *testing.T) {
	f := newFixture(t, probeWithAudio, []byte("x"), nil)
	for _, path := range []string{"", "   ", filepath.Join(t.TempDir(), "missing.mp4"), t.TempDir()} {
		if _, err := f.extractor.Extract(context.Background(), path); !errors.Is(err, services.ErrMedia) {
			t.Fatalf("path %q: expected ErrMedia, got %v", path, err)
		}
	}
}

func TestExtractProbeFailureIsMediaError(t *testing.T) {
	f := newFixture(t, probeWithAudio, []byte("x"), nil)
	f.extractor.WithProbeRunner(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1: Invalid data found when processing input")
	})
	if _, err := f.extractor.Extract(context.Background(), f.video); !errors.Is(err, services.ErrMedia) {
		t.Fatalf("expected ErrMedia, got %v", err)
	}
}

func TestExtractInterruptedIsNotMediaError(t *testing.T) {
	f := newFixture(t, probeWithAudio, nil, context.Canceled)
	ctx, cancel := context.WithCancel(context.Background())
	f.extractor.WithCommandRunner(func(context.Context, string, ...string) error {
		cancel()
		return errors.New("signal: killed")
	})
	_, err := f.extractor.Extract(ctx, f.video)
	if !errors.Is(err, context.Canceled) || errors.Is(err, services.ErrMedia) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
	if left := f.leftovers(t); len(left) != 0 {
		t.Fatalf("expected temp file cleanup, found %v", left)
	}
}

func TestWaveformCloseNil(t *testing.T) {
	var w *Waveform
	if err := w.Close(); err != nil {
		t.Fatalf("nil Close returned %v", err)
	}
	if err := (&Waveform{}).Close(); err != nil {
		t.Fatalf("empty Close returned %v", err)
	}
}
