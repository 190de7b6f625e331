package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Marshal renders segments as the compact JSON array written to stdout.
func Marshal(segments []FormattedSegment) ([]byte, error) {
	if segments == nil {
		segments = []FormattedSegment{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(segments); err != nil {
		return nil, fmt.Errorf("encode transcript: %w", err)
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators restores U+2028 and U+2029, which encoding/json
// escapes even with HTML escaping disabled. Escaped backslashes are skipped
// pairwise so a literal `\\u2028` in the text is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if i+5 < len(data) && data[i+1] == 'u' && string(data[i+2:i+5]) == "202" {
			switch data[i+5] {
			case '8':
				out = append(out, "\u2028"...)
				i += 5
				continue
			case '9':
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// Encode writes the JSON document to w in a single write.
func Encode(w io.Writer, segments []FormattedSegment) error {
	data, err := Marshal(segments)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
