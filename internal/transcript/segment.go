package transcript

import (
	"fmt"
	"sort"
	"strings"

	"vidscribe/internal/timefmt"
)

// Segment is one time-aligned utterance produced by the speech model.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Duration returns End-Start; negative values indicate a model artifact.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// FormattedSegment is the output projection of a Segment.
type FormattedSegment struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

// Normalize trims segment text and stably orders segments by start time.
// The input slice is not modified.
func Normalize(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		seg.Text = strings.TrimSpace(seg.Text)
		out[i] = seg
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// Inverted returns the indices of segments whose end precedes their start.
func Inverted(segments []Segment) []int {
	var idx []int
	for i, seg := range segments {
		if seg.End < seg.Start {
			idx = append(idx, i)
		}
	}
	return idx
}

// Format renders every segment with mode, preserving order and length.
func Format(segments []Segment, mode timefmt.Mode) ([]FormattedSegment, error) {
	out := make([]FormattedSegment, 0, len(segments))
	for i, seg := range segments {
		start, err := timefmt.Format(mode, seg.Start)
		if err != nil {
			return nil, fmt.Errorf("segment %d start: %w", i, err)
		}
		end, err := timefmt.Format(mode, seg.End)
		if err != nil {
			return nil, fmt.Errorf("segment %d end: %w", i, err)
		}
		out = append(out, FormattedSegment{
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return out, nil
}
