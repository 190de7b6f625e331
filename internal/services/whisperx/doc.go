// Package whisperx runs the speech recognition model over an extracted
// waveform and returns timed transcript segments.
//
// Two backends share one code path:
//   - whisper: the openai-whisper CLI
//   - whisperx: WhisperX launched through uvx, with VAD and batching
//
// Both write a JSON document with a "segments" array into a private output
// directory that is removed once the segments are loaded. Model stdout and
// stderr are captured so nothing reaches the process's stdout. Failures are
// tagged services.ErrTranscription.
//
// Configuration options (backend, model, language, CUDA, VAD method) are
// passed via Config.
package whisperx
