// Package config loads autocue settings from TOML.
//
// Lookup order: an explicit --config path, then
// ~/.config/autocue/config.toml, then ./autocue.toml in the working
// directory. Missing files fall back to Default().
package config
