package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// applyRuntimeResolution applies transformations that depend on the final configuration
func applyRuntimeResolution(cfg *Config) error {
	if err := resolveClientID(&cfg.MQTT); err != nil {
		return err
	}
	resolvePersistenceDir(&cfg.MQTT)
	return nil
}

// resolveClientID replaces the sentinel client ID with a random UUID
func resolveClientID(cfg *MQTTConfig) error {
	if cfg.ClientID != SentinelClientID {
		return nil
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Errorf("failed to generate client ID: %w", err)
	}
	cfg.ClientID = id.String()
	cfg.GeneratedClientID = true
	return nil
}

// resolvePersistenceDir moves the file store into a subdirectory named after the
// client id. Must run after resolveClientID.
func resolvePersistenceDir(cfg *MQTTConfig) {
	if cfg.PersistenceDir == "" {
		return
	}
	cfg.PersistenceDir = filepath.Join(cfg.PersistenceDir, storeDirName(cfg.ClientID))
}

// storeDirName makes a client id safe to use as a single path element
func storeDirName(clientID string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, clientID)
	if name == "" || name == "." || name == ".." {
		return "_" + name
	}
	return name
}
