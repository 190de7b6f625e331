package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"vidscribe/internal/services"
)

// Mode selects how second offsets are rendered.
type Mode int

const (
	// MinutesSeconds renders "M:SS" with truncated seconds.
	MinutesSeconds Mode = iota
	// FixedDecimal renders seconds with two decimal places, e.g. "83.40".
	FixedDecimal
)

// Configuration names for each mode.
const (
	MinutesSecondsName = "minutes_seconds"
	FixedDecimalName   = "fixed_decimal"
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case MinutesSeconds:
		return MinutesSecondsName
	case FixedDecimal:
		return FixedDecimalName
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode resolves a configuration or flag value into a Mode. Short aliases
// such as "minsec" and "decimal" are accepted.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case MinutesSecondsName, "minsec", "m:ss", "minutes":
		return MinutesSeconds, nil
	case FixedDecimalName, "decimal", "seconds":
		return FixedDecimal, nil
	default:
		return 0, fmt.Errorf("%w: unknown time format %q (want %s or %s)", services.ErrInvalidInput, value, MinutesSecondsName, FixedDecimalName)
	}
}

// Format renders seconds according to mode.
func Format(mode Mode, seconds float64) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", fmt.Errorf("%w: time value %v is not finite", services.ErrInvalidInput, seconds)
	}
	if seconds < 0 {
		return "", fmt.Errorf("%w: time value %v is negative", services.ErrInvalidInput, seconds)
	}
	// Drop the sign of negative zero.
	seconds = math.Abs(seconds)
	switch mode {
	case MinutesSeconds:
		return formatMinutesSeconds(seconds), nil
	case FixedDecimal:
		return strconv.FormatFloat(seconds, 'f', 2, 64), nil
	default:
		return "", fmt.Errorf("%w: unsupported time format %s", services.ErrInvalidInput, mode)
	}
}

func formatMinutesSeconds(seconds float64) string {
	// Minutes go through FormatFloat so very large offsets do not overflow an int.
	minutes := strconv.FormatFloat(math.Floor(seconds/60), 'f', 0, 64)
	secs := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%s:%02d", minutes, secs)
}

// Parse converts a rendered offset back to seconds. It accepts "M:SS",
// "H:MM:SS", and plain decimal seconds.
func Parse(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty timestamp", services.ErrInvalidInput)
	}
	parts := strings.Split(value, ":")
	nums := make([]float64, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return 0, fmt.Errorf("%w: invalid timestamp %q", services.ErrInvalidInput, value)
		}
		nums[i] = n
	}
	switch len(nums) {
	case 1:
		return nums[0], nil
	case 2:
		return nums[0]*60 + nums[1], nil
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2], nil
	default:
		return 0, fmt.Errorf("%w: invalid timestamp %q", services.ErrInvalidInput, value)
	}
}
