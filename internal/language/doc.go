// Package language normalizes the language hint handed to the speech model
// and recognizes language tags on container audio streams.
//
// Codes are reduced to ISO 639-1 where one exists (falling back to the
// three-letter base subtag), using a small table of common forms plus
// golang.org/x/text/language for everything else.
package language
