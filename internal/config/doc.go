// Package config provides user configuration management for the MVG route planner.
//
// This package manages a YAML configuration file holding the API endpoint and
// timeouts, the toggle values a new session starts with, terminal options and
// logging. The configuration follows OS-specific conventions for storage location.
// The planner never writes session state back to this file.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/mvg/config.yaml or $HOME/.config/mvg/config.yaml
//   - macOS: $HOME/.config/mvg/config.yaml
//   - Windows: %LOCALAPPDATA%\mvg\config.yaml
//
// # Usage Example
//
//	cfg, err := config.Load("") // default location; missing file = defaults
//	if err != nil {
//	    return err
//	}
//
//	client := mvg.NewClientWithURL(cfg.API.BaseURL)
//	client.SetTimeout(cfg.API.Timeout)
//
//	// Write a commented default file
//	if err := config.NewConfig().Save(""); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Save is protected by a mutex and writes through a temporary file and rename.
package config
