package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMedia         = errors.New("media error")
	ErrTranscription = errors.New("transcription error")
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfiguration = errors.New("configuration error")
	ErrExternalTool  = errors.New("external tool error")
)

// Process exit codes reported by the CLI for each failure class.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitMedia         = 2
	ExitTranscription = 3
	ExitInvalidInput  = 4
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a pipeline error to the process exit status. Configuration
// errors exit with ExitFailure even when they wrap another marker.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrConfiguration):
		return ExitFailure
	case errors.Is(err, ErrMedia):
		return ExitMedia
	case errors.Is(err, ErrTranscription):
		return ExitTranscription
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
