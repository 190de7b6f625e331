// Package preflight verifies, before any media is touched, that the external
// tools resolve on PATH and that the temporary directory is usable.
//
// RunAll returns one Result per check; Err folds the failures into a single
// error tagged for exit status classification.
package preflight
