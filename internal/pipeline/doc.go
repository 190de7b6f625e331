// Package pipeline runs one transcription end to end: extract the waveform,
// transcribe it, format the segment offsets, and emit the JSON document.
//
// Stages move strictly forward (Start, Extracting, Transcribing, Formatting,
// Emitted) or end in Failed. Each transition is logged at debug level with the
// run ID and stage name. The waveform handle is closed on every exit path, and
// nothing is written to the output stream unless the full document encoded.
package pipeline
