// Package main hosts the transcribe CLI entrypoint.
//
// transcribe takes exactly one video path, runs the extraction and speech
// model pipeline, and prints the transcript as a single JSON array on stdout.
// Logs, usage text, the optional --summary table, and error lines go to
// stderr so stdout holds either one complete document or nothing.
//
// Keep this package lean: configuration, preflight checks, and the pipeline
// itself live in internal packages; this layer only resolves flags and wires
// them together.
package main
