package audio

import (
	"strconv"
	"strings"

	"vidscribe/internal/language"
	"vidscribe/internal/media/ffprobe"
)

// Selection reasons reported for logging.
const (
	ReasonDefault = "default_disposition"
	ReasonEnglish = "english_language"
	ReasonFirst   = "first_audio"
)

// Selection describes the audio stream chosen for transcription.
type Selection struct {
	Stream     ffprobe.Stream
	Index      int
	Reason     string
	AudioCount int
}

// Label returns a human-readable summary of the selected stream.
func (s Selection) Label() string {
	if s.Index < 0 {
		return ""
	}
	return formatStreamSummary(s.Stream)
}

// Select returns the stream to transcribe. Index is -1 when the container has
// no audio.
func Select(probe ffprobe.Result) Selection {
	audio := probe.AudioStreams()
	if len(audio) == 0 {
		return Selection{Index: -1}
	}

	pick := func(stream ffprobe.Stream, reason string) Selection {
		return Selection{Stream: stream, Index: stream.Index, Reason: reason, AudioCount: len(audio)}
	}
	for _, stream := range audio {
		if stream.IsDefault() {
			return pick(stream, ReasonDefault)
		}
	}
	for _, stream := range audio {
		if isEnglish(stream) {
			return pick(stream, ReasonEnglish)
		}
	}
	return pick(audio[0], ReasonFirst)
}

func isEnglish(stream ffprobe.Stream) bool {
	return language.Matches(language.ExtractFromTags(stream.Tags), "en")
}

func formatStreamSummary(stream ffprobe.Stream) string {
	parts := make([]string, 0, 4)
	if lang := language.Normalize(language.ExtractFromTags(stream.Tags)); lang != "" {
		parts = append(parts, lang)
	}
	codec := stream.CodecLong
	if codec == "" {
		codec = stream.CodecName
	}
	if codec != "" {
		parts = append(parts, codec)
	}
	if stream.Channels > 0 {
		parts = append(parts, strconv.Itoa(stream.Channels)+"ch")
	}
	if title := strings.TrimSpace(stream.Tags["title"]); title != "" {
		parts = append(parts, title)
	}
	if len(parts) == 0 {
		return "audio #" + strconv.Itoa(stream.Index)
	}
	return strings.Join(parts, " | ")
}
