// Package config loads, normalizes, and validates transcription settings.
//
// It supplies repository defaults (base model, English, M:SS timestamps),
// expands user paths (including tilde shortcuts), reads TOML files, and
// honours environment overrides such as VIDSCRIBE_MODEL and HF_TOKEN.
// Command-line flags are layered last through Config.Apply.
//
// Always obtain settings through this package so the pipeline receives an
// explicit, validated configuration instead of reading constants.
package config
