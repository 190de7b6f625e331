package ffprobe

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
)

const sampleProbe = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "aac", "channels": 2,
     "disposition": {"default": 0}, "tags": {"language": "fre"}},
    {"index": 2, "codec_type": "audio", "codec_name": "ac3", "channels": 6,
     "disposition": {"default": 1}, "tags": {"language": "eng", "title": "Main"}}
  ],
  "format": {"filename": "clip.mkv", "nb_streams": 3, "duration": "83.400000", "size": "2048"}
}`

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio", Index: 1},
			{CodecType: "Audio", Index: 2},
		},
		Format: Format{Duration: "123.45", Size: "1000"},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{Format: Format{Duration: "bad", Size: "-1"}}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if (Result{}).DurationSeconds() != 0 {
		t.Fatal("expected zero duration when absent")
	}
}

func TestInspectWithDecodesStreams(t *testing.T) {
	var gotBinary string
	var gotArgs []string
	run := func(_ context.Context, binary string, args ...string) ([]byte, error) {
		gotBinary = binary
		gotArgs = args
		return []byte(sampleProbe), nil
	}

	result, err := InspectWith(context.Background(), run, "", " clip.mkv ")
	if err != nil {
		t.Fatalf("InspectWith returned error: %v", err)
	}
	if gotBinary != "ffprobe" {
		t.Fatalf("expected default binary, got %q", gotBinary)
	}
	if gotArgs[len(gotArgs)-1] != "clip.mkv" || gotArgs[len(gotArgs)-2] != "--" {
		t.Fatalf("expected trimmed path after --, got %v", gotArgs)
	}
	if !slices.Contains(gotArgs, "-show_streams") {
		t.Fatalf("expected -show_streams in %v", gotArgs)
	}

	audio := result.AudioStreams()
	if len(audio) != 2 {
		t.Fatalf("expected 2 audio streams, got %d", len(audio))
	}
	if audio[0].IsDefault() || !audio[1].IsDefault() {
		t.Fatalf("unexpected default flags: %+v", audio)
	}
	if audio[1].Tags["language"] != "eng" || audio[1].Channels != 6 {
		t.Fatalf("unexpected stream metadata: %+v", audio[1])
	}
	if result.DurationSeconds() != 83.4 {
		t.Fatalf("unexpected duration %v", result.DurationSeconds())
	}
}

func TestInspectWithErrors(t *testing.T) {
	if _, err := InspectWith(context.Background(), nil, "ffprobe", "  "); err == nil {
		t.Fatal("expected empty path error")
	}

	failure := errors.New("exit status 1: Invalid data found when processing input")
	failing := func(context.Context, string, ...string) ([]byte, error) { return nil, failure }
	if _, err := InspectWith(context.Background(), failing, "ffprobe", "x.mp4"); !errors.Is(err, failure) {
		t.Fatalf("expected runner error to be wrapped, got %v", err)
	}

	garbage := func(context.Context, string, ...string) ([]byte, error) { return []byte("not json"), nil }
	if _, err := InspectWith(context.Background(), garbage, "ffprobe", "x.mp4"); err == nil {
		t.Fatal("expected parse error")
	}
}
