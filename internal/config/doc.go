// Package config loads hecto's settings.
//
// Settings come from layered sources, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Overrides (flags)       │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← HECTO_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/hecto/config.{toml,yaml}
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A config file may be TOML or YAML:
//
//	# ~/.config/hecto/config.toml
//	[keys]
//	quit = "Ctrl+Q"
//
//	[terminal]
//	backend = "tcell"
//	maxReadErrors = 0
//
//	[logging]
//	level = "info"
//	file = "/tmp/hecto.log"
//
// Typed sections (Logging, Keys, Terminal, Screen, Debug) read the merged
// result. A value of the wrong type falls back to the default and is
// recorded; Validate reports it together with out-of-range values.
package config
