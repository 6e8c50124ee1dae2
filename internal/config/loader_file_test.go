package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Overlay(t *testing.T) {
	cfg := defaultConfig(RoleProducer)
	path := writeConfigFile(t, `
mqtt:
  user: alice
  qos: 2
  persistenceDir: ""
stats:
  redisAddress: redis:6379
  ttl: 1h
`)

	require.NoError(t, loadFile(path, cfg))
	assert.Equal(t, "alice", cfg.MQTT.User)
	assert.Equal(t, byte(2), cfg.MQTT.QoS)
	assert.Empty(t, cfg.MQTT.PersistenceDir)
	assert.Equal(t, "redis:6379", cfg.Stats.RedisAddress)
	assert.Equal(t, "admin", cfg.MQTT.Password)
}

func TestLoadFile_Empty(t *testing.T) {
	cfg := defaultConfig(RoleSubscriber)
	path := writeConfigFile(t, "")

	require.NoError(t, loadFile(path, cfg))
	assert.Equal(t, defaultConfig(RoleSubscriber).MQTT.Host, cfg.MQTT.Host)
}

func TestLoadFile_UnknownKey(t *testing.T) {
	cfg := defaultConfig(RoleProducer)
	path := writeConfigFile(t, "mqtt:\n  hots: typo\n")

	assert.Error(t, loadFile(path, cfg))
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := defaultConfig(RoleProducer)
	err := loadFile(filepath.Join(t.TempDir(), "absent.yaml"), cfg)
	assert.ErrorContains(t, err, "failed to read config file")
}
