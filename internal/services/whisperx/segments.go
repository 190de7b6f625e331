package whisperx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrNoOutput reports that the model exited cleanly without writing JSON.
var ErrNoOutput = errors.New("model produced no JSON output")

// Segment represents a transcribed segment from the model's JSON output.
// Additional fields such as tokens or words are ignored.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type payload struct {
	Segments *[]Segment `json:"segments"`
}

// LoadSegments loads segments from a whisper or WhisperX JSON file. A missing
// file yields ErrNoOutput; a document without a "segments" key is malformed.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoOutput
		}
		return nil, err
	}
	var doc payload
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse model json: %w", err)
	}
	if doc.Segments == nil {
		return nil, errors.New("parse model json: missing segments")
	}
	return *doc.Segments, nil
}
