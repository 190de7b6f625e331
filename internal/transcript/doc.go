// Package transcript holds the segment model shared by the pipeline stages
// and the JSON emitter that produces the tool's only stdout document.
//
// Encode renders a compact array of {"start","end","text"} objects with
// non-ASCII and HTML characters left literal and no trailing newline. The
// document is built in memory first so a failed encode never leaves partial
// JSON on the output stream.
package transcript
