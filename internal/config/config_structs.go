// Package config provides configuration loading and validation from defaults, a YAML file,
// environment variables and command line flags.
package config

import "time"

// Role selects which binary the configuration is loaded for
type Role string

const (
	// RoleProducer publishes a file payload on a timer
	RoleProducer Role = "producer"
	// RoleSubscriber counts messages received on a topic
	RoleSubscriber Role = "subscriber"
)

// Config holds the complete configuration
type Config struct {
	Role  Role        `yaml:"-"`
	MQTT  MQTTConfig  `yaml:"mqtt"`
	Job   JobConfig   `yaml:"job"`
	Stats StatsConfig `yaml:"stats"`
}

// MQTTConfig holds broker connection parameters
type MQTTConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	ClientID string `yaml:"clientId"`
	// GeneratedClientID is set when ClientID replaced the sentinel default
	GeneratedClientID bool   `yaml:"-"`
	Topic             string `yaml:"topic"`
	QoS               byte   `yaml:"qos"`
	WaitTime          int    `yaml:"waitTime"` // accepted for compatibility, not used

	KeepAlive            time.Duration `yaml:"keepAlive"`
	ConnectTimeout       time.Duration `yaml:"connectTimeout"`
	WriteTimeout         time.Duration `yaml:"writeTimeout"`
	SubscribeTimeout     time.Duration `yaml:"subscribeTimeout"`
	CompletionTimeout    time.Duration `yaml:"completionTimeout"`
	MaxReconnectInterval time.Duration `yaml:"maxReconnectInterval"`
	DisconnectTimeout    uint          `yaml:"disconnectTimeout"` // milliseconds

	// PersistenceDir stores in-flight QoS 1/2 messages on disk; empty keeps them in memory.
	// Load appends the client id so each client owns its store.
	PersistenceDir string `yaml:"persistenceDir"`

	// TLS material, only used when the secure scheme is selected
	CACert       string `yaml:"caCert"`
	ClientCert   string `yaml:"clientCert"`
	ClientKey    string `yaml:"clientKey"`
	InsecureSkip bool   `yaml:"insecureSkip"`
}

// JobConfig holds the send/receive target and the producer schedule
type JobConfig struct {
	NumMessages int           `yaml:"numMessages"`
	Interval    time.Duration `yaml:"interval"`
	PayloadFile string        `yaml:"file"`
}

// StatsConfig holds the optional Redis progress recorder settings
type StatsConfig struct {
	RedisAddress string        `yaml:"redisAddress"`
	KeyPrefix    string        `yaml:"keyPrefix"`
	TTL          time.Duration `yaml:"ttl"`
	DialTimeout  time.Duration `yaml:"dialTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// Enabled reports whether progress should be recorded to Redis
func (s StatsConfig) Enabled() bool {
	return s.RedisAddress != ""
}
