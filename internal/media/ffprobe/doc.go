// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect runs ffprobe with stderr captured and decodes streams and container
// metadata; InspectWith accepts a Runner so callers and tests can substitute
// the process. Stream carries disposition flags and tags so audio selection
// can honor the container's default track and language metadata.
package ffprobe
