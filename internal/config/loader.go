package config

import (
	"fmt"
	"os"
)

// Load loads configuration with precedence: defaults → config file → environment variables → command line flags.
// args are the command line arguments without the program name.
// It performs runtime resolution and validation before returning the configuration.
func Load(role Role, args []string) (*Config, error) {
	if role != RoleProducer && role != RoleSubscriber {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	// Step 1: Start with defaults
	cfg := defaultConfig(role)

	// Flags are parsed first so --config is known, but applied last
	fs, fv := newFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Step 2: Apply the config file
	path := os.Getenv("CONFIG_FILE")
	if fs.Changed(flagConfig) {
		path = fv.configFile
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Step 3: Apply environment variables
	loadMQTTFromEnv(&cfg.MQTT)
	loadJobFromEnv(&cfg.Job)
	loadStatsFromEnv(&cfg.Stats)

	// Step 4: Apply command line flags (highest precedence)
	applyFlags(fs, fv, cfg)

	// Step 5: Apply runtime transformations
	if err := applyRuntimeResolution(cfg); err != nil {
		return nil, err
	}

	// Step 6: Validate the final configuration
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
