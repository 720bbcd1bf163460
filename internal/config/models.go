package config

import "time"

// CurrentVersion is the config file format version this build reads and writes
const CurrentVersion = 1

// Config represents the entire user configuration file.
// It configures the collaborators of the planner (API client, terminal, logging) and the
// initial search toggles. Session state is never written back.
type Config struct {
	Version  int      `yaml:"version"`
	API      API      `yaml:"api"`
	Defaults Defaults `yaml:"defaults"`
	UI       UI       `yaml:"ui"`
	Log      Log      `yaml:"log"`
}

// API configures the MVG client
type API struct {
	BaseURL        string        `yaml:"base_url"`        // API origin, e.g. https://www.mvg.de
	Timeout        time.Duration `yaml:"timeout"`         // Per HTTP request
	RequestTimeout time.Duration `yaml:"request_timeout"` // Per route search (lookups + query)
	MaxRetries     int           `yaml:"max_retries"`     // Retries on timeouts and 5xx
	RetryDelay     time.Duration `yaml:"retry_delay"`     // First backoff step, doubled per retry
	CacheTTL       time.Duration `yaml:"cache_ttl"`       // Station lookup cache (0 = off)
}

// Defaults are the toggle values a new session starts with
type Defaults struct {
	Arrival bool `yaml:"arrival"`
	Ubahn   bool `yaml:"ubahn"`
	Sbahn   bool `yaml:"sbahn"`
	Tram    bool `yaml:"tram"`
	Bus     bool `yaml:"bus"`
}

// UI configures the terminal program
type UI struct {
	PollInterval time.Duration `yaml:"poll_interval"` // Idle tick of the render loop
	AltScreen    bool          `yaml:"alt_screen"`    // Use the alternate screen buffer
}

// Log configures logging. Logging is off unless a level is set.
type Log struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn or error
	File  string `yaml:"file,omitempty"`  // Defaults to mvg.log in the config directory
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		API: API{
			BaseURL:        "https://www.mvg.de",
			Timeout:        10 * time.Second,
			RequestTimeout: 20 * time.Second,
			MaxRetries:     2,
			RetryDelay:     500 * time.Millisecond,
			CacheTTL:       10 * time.Minute,
		},
		Defaults: Defaults{
			Ubahn: true,
			Sbahn: true,
			Tram:  true,
			Bus:   true,
		},
		UI: UI{
			PollInterval: 50 * time.Millisecond,
			AltScreen:    true,
		},
	}
}
