// Package audio turns a video container into the mono 16 kHz waveform the
// speech model consumes.
//
// Select picks one audio stream: the first flagged default by the container,
// else the first English-tagged stream, else the first audio stream. Extractor
// probes the input with ffprobe, runs ffmpeg with all output captured, and
// returns a Waveform handle whose Close removes the temporary file. Every
// failure is tagged services.ErrMedia.
package audio
