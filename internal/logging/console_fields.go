package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

type consoleField struct {
	label string
	value string
}

// highlightKeys are printed first, in this order, at info level and above.
var highlightKeys = []string{
	FieldAlert,
	FieldEventType,
	"video",
	"backend",
	"model",
	"language",
	"stream_index",
	"stream_language",
	"audio_duration",
	"segment_count",
	"stage_duration",
	"error",
	FieldErrorHint,
}

// selectFields orders attributes for console output. Header keys are skipped;
// debug records also show keys that are hidden at info level.
func selectFields(attrs []kv, debug bool) []consoleField {
	if len(attrs) == 0 {
		return nil
	}
	used := make([]bool, len(attrs))
	result := make([]consoleField, 0, len(attrs))
	add := func(idx int) {
		used[idx] = true
		attr := attrs[idx]
		if isHeaderKey(attr.key) || (!debug && isDebugOnlyKey(attr.key)) {
			return
		}
		label := attr.key
		if !debug {
			label = displayLabel(attr.key)
		}
		result = append(result, consoleField{label: label, value: formatValueForKey(attr.key, attr.value)})
	}
	for _, key := range highlightKeys {
		for idx, attr := range attrs {
			if !used[idx] && attr.key == key {
				add(idx)
				break
			}
		}
	}
	for idx := range attrs {
		if !used[idx] {
			add(idx)
		}
	}
	return result
}

func isHeaderKey(key string) bool {
	switch key {
	case "", FieldComponent, FieldRunID, FieldStage:
		return true
	}
	return false
}

func isDebugOnlyKey(key string) bool {
	switch key {
	case "command", "waveform", "output_dir", "temp_dir":
		return true
	}
	return strings.HasSuffix(key, "_path") || strings.HasPrefix(key, "ffprobe.")
}

func displayLabel(key string) string {
	switch key {
	case FieldAlert:
		return "Alert"
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case "stream_index":
		return "Stream"
	case "segment_count":
		return "Segments"
	case "stage_duration":
		return "Duration"
	}
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}

func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	switch {
	case v.Kind() == slog.KindDuration && (key == "stage_duration" || strings.HasSuffix(key, "_duration")):
		return v.Duration().Round(time.Millisecond).String()
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	case key == "error":
		value := formatValue(v)
		const maxLen = 200
		if len(value) > maxLen {
			value = value[:maxLen] + "…"
		}
		return value
	}
	return formatValue(v)
}

func attrString(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return formatValue(v)
	}
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().In(time.Local).Format(logTimestampLayout)
	case slog.KindString, slog.KindAny:
		return quoteIfNeeded(attrString(v))
	}
	return quoteIfNeeded(v.String())
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if r < ' ' || r == '"' {
			return strconv.Quote(s)
		}
	}
	return s
}
