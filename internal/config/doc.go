// Package config provides typed configuration for consolewind.
//
// Configuration is layered, later layers overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by cmd)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← CONSOLEWIND_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML (with @include) or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: file and environment loading into generic maps
//   - watcher: live reload of the configuration file
//
// # Example
//
//	cfg, err := config.Load("consolewind.toml")
//	if err != nil {
//	    return err
//	}
//	policy := cfg.Buffer.BackPolicy()
package config
