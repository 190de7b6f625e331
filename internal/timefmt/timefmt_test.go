package timefmt

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"vidscribe/internal/services"
)

func TestFormatMinutesSeconds(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{0.4, "0:00"},
		{5, "0:05"},
		{59.999, "0:59"},
		{60, "1:00"},
		{83.4, "1:23"},
		{83.99, "1:23"},
		{85.0, "1:25"},
		{599.5, "9:59"},
		{600, "10:00"},
		{3600, "60:00"},
		{7322.7, "122:02"},
	}
	for _, tt := range tests {
		got, err := Format(MinutesSeconds, tt.seconds)
		if err != nil {
			t.Fatalf("Format(%v) returned error: %v", tt.seconds, err)
		}
		if got != tt.want {
			t.Fatalf("Format(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatMinutesSecondsUnderAMinute(t *testing.T) {
	for s := 0.0; s < 60; s += 0.25 {
		got, err := Format(MinutesSeconds, s)
		if err != nil {
			t.Fatalf("Format(%v) returned error: %v", s, err)
		}
		want := fmt.Sprintf("0:%02d", int(math.Floor(s)))
		if got != want {
			t.Fatalf("Format(%v) = %q, want %q", s, got, want)
		}
	}
}

func TestFormatMinutesSecondsShape(t *testing.T) {
	for s := 0.0; s < 7200; s += 0.37 {
		got, err := Format(MinutesSeconds, s)
		if err != nil {
			t.Fatalf("Format(%v) returned error: %v", s, err)
		}
		want := fmt.Sprintf("%d:%02d", int(math.Floor(s/60)), int(math.Floor(math.Mod(s, 60))))
		if got != want {
			t.Fatalf("Format(%v) = %q, want %q", s, got, want)
		}
		minutes, secs, ok := strings.Cut(got, ":")
		if !ok || len(secs) != 2 {
			t.Fatalf("Format(%v) = %q, expected two-digit seconds", s, got)
		}
		if len(minutes) > 1 && minutes[0] == '0' {
			t.Fatalf("Format(%v) = %q, expected unpadded minutes", s, got)
		}
	}
}

func TestFormatFixedDecimal(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0.00"},
		{1.5, "1.50"},
		{83.4, "83.40"},
		{85, "85.00"},
		{9.999, "10.00"},
		{3600.126, "3600.13"},
	}
	for _, tt := range tests {
		got, err := Format(FixedDecimal, tt.seconds)
		if err != nil {
			t.Fatalf("Format(%v) returned error: %v", tt.seconds, err)
		}
		if got != tt.want {
			t.Fatalf("Format(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatFixedDecimalAlwaysTwoDigits(t *testing.T) {
	for s := 0.0; s < 500; s += 0.173 {
		got, err := Format(FixedDecimal, s)
		if err != nil {
			t.Fatalf("Format(%v) returned error: %v", s, err)
		}
		_, frac, ok := strings.Cut(got, ".")
		if !ok || len(frac) != 2 {
			t.Fatalf("Format(%v) = %q, expected exactly two decimals", s, got)
		}
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	for _, mode := range []Mode{MinutesSeconds, FixedDecimal} {
		first, err := Format(mode, 4242.42)
		if err != nil {
			t.Fatalf("Format returned error: %v", err)
		}
		for i := 0; i < 10; i++ {
			again, _ := Format(mode, 4242.42)
			if again != first {
				t.Fatalf("mode %s: got %q then %q", mode, first, again)
			}
		}
	}
}

func TestFormatRejectsInvalidValues(t *testing.T) {
	for _, value := range []float64{-0.01, -60, math.NaN(), math.Inf(1), math.Inf(-1)} {
		for _, mode := range []Mode{MinutesSeconds, FixedDecimal} {
			if _, err := Format(mode, value); !errors.Is(err, services.ErrInvalidInput) {
				t.Fatalf("Format(%s, %v) expected ErrInvalidInput, got %v", mode, value, err)
			}
		}
	}
	if _, err := Format(Mode(42), 1); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected unsupported mode to fail, got %v", err)
	}
}

func TestFormatNegativeZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	tests := []struct {
		mode Mode
		want string
	}{
		{MinutesSeconds, "0:00"},
		{FixedDecimal, "0.00"},
	}
	for _, tt := range tests {
		got, err := Format(tt.mode, negZero)
		if err != nil {
			t.Fatalf("Format(%s, -0) returned error: %v", tt.mode, err)
		}
		if got != tt.want {
			t.Fatalf("Format(%s, -0) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"minutes_seconds", MinutesSeconds},
		{" MinSec ", MinutesSeconds},
		{"m:ss", MinutesSeconds},
		{"fixed_decimal", FixedDecimal},
		{"decimal", FixedDecimal},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if err != nil {
			t.Fatalf("ParseMode(%q) returned error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseMode(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
	if _, err := ParseMode("hours"); err == nil {
		t.Fatal("expected unknown mode to fail")
	}
	if MinutesSeconds.String() != "minutes_seconds" || FixedDecimal.String() != "fixed_decimal" {
		t.Fatalf("unexpected mode names: %s %s", MinutesSeconds, FixedDecimal)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1:23", 83},
		{"0:05", 5},
		{"1:02:03", 3723},
		{"83.40", 83.4},
		{" 12 ", 12},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	for _, bad := range []string{"", "abc", "1:xx", "1:2:3:4", "-5"} {
		if _, err := Parse(bad); !errors.Is(err, services.ErrInvalidInput) {
			t.Fatalf("Parse(%q) expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestParseInvertsMinutesSecondsTruncation(t *testing.T) {
	for _, s := range []float64{0, 12.7, 83.4, 599.99, 3601.2} {
		rendered, err := Format(MinutesSeconds, s)
		if err != nil {
			t.Fatalf("Format returned error: %v", err)
		}
		back, err := Parse(rendered)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", rendered, err)
		}
		if back != math.Floor(s) {
			t.Fatalf("round trip of %v: got %v, want %v", s, back, math.Floor(s))
		}
	}
}
