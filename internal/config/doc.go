// Package config loads the host configuration file (TOML) and wraps the Fyne
// preferences that hold per-user settings changed from inside the editor.
//
// Load resolves the config path (explicit flag, then ~/.config/proteus/config.toml),
// overlays it on Default, expands ~ in paths and validates the result.
package config
