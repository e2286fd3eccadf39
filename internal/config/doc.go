// Package config loads, normalizes, and validates miso settings.
//
// Settings live in a TOML file inside a settings directory (by default
// ~/.config/miso). The directory must exist; a missing file inside it falls
// back to repository defaults. The package also owns the path expansion rule
// (tilde shortcuts, cleaning, absolute form) that every other path in the CLI
// goes through.
package config
