package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// SentinelClientID is replaced by a random UUID when left unchanged
	SentinelClientID = "clientTest"
	// PlainPort is the conventional unencrypted MQTT port
	PlainPort = 1883

	defaultProducerMessages   = 100
	defaultSubscriberMessages = 1000
	defaultInterval           = 4500 * time.Millisecond
	defaultPayloadFile        = "testfilelarge.txt"
	persistenceSubdir         = "mqtt-client"
)

// defaultMQTTConfig returns the default MQTT configuration
func defaultMQTTConfig(role Role) MQTTConfig {
	cfg := MQTTConfig{
		Host:                 "localhost",
		Port:                 PlainPort,
		User:                 "admin",
		Password:             "admin",
		ClientID:             SentinelClientID,
		Topic:                "testTopic",
		QoS:                  1,
		WaitTime:             5,
		KeepAlive:            5 * time.Second,
		ConnectTimeout:       10 * time.Second,
		WriteTimeout:         30 * time.Second,
		SubscribeTimeout:     10 * time.Second,
		CompletionTimeout:    50 * time.Second,
		MaxReconnectInterval: 10 * time.Second,
		DisconnectTimeout:    250,
	}
	if role == RoleProducer {
		cfg.PersistenceDir = filepath.Join(os.TempDir(), persistenceSubdir)
	}
	return cfg
}

// defaultJobConfig returns the default job configuration
func defaultJobConfig(role Role) JobConfig {
	if role == RoleSubscriber {
		return JobConfig{NumMessages: defaultSubscriberMessages}
	}
	return JobConfig{
		NumMessages: defaultProducerMessages,
		Interval:    defaultInterval,
		PayloadFile: defaultPayloadFile,
	}
}

// defaultStatsConfig returns the default stats configuration (disabled)
func defaultStatsConfig() StatsConfig {
	return StatsConfig{
		RedisAddress: "",
		KeyPrefix:    "mqtt-client",
		TTL:          24 * time.Hour,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// defaultConfig returns a complete configuration with all default values
func defaultConfig(role Role) *Config {
	return &Config{
		Role:  role,
		MQTT:  defaultMQTTConfig(role),
		Job:   defaultJobConfig(role),
		Stats: defaultStatsConfig(),
	}
}
