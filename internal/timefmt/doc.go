// Package timefmt renders segment offsets (floating-point seconds) as display
// strings and parses them back.
//
// Two modes exist: MinutesSeconds ("M:SS", truncated, minutes unpadded) and
// FixedDecimal (seconds with exactly two decimal places). Inputs that are
// negative or not finite are rejected with services.ErrInvalidInput rather
// than producing malformed output.
package timefmt
