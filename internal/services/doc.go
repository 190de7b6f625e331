// Package services defines shared utilities consumed by the pipeline stages
// and their external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp the run identifier and stage name for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into media, transcription, invalid input, and configuration errors.
//   - ExitCode, which turns those markers into process exit statuses.
//
// Use these helpers when wiring new stage logic so error reporting stays
// uniform across the pipeline.
package services
