package config

import (
	"math"
	"os"
	"strconv"
	"time"
)

// loadMQTTFromEnv loads MQTT configuration from environment variables
func loadMQTTFromEnv(cfg *MQTTConfig) {
	loadMQTTStrings(cfg)
	loadMQTTInts(cfg)
	loadMQTTTimeouts(cfg)
	loadMQTTTLS(cfg)
}

func loadMQTTStrings(cfg *MQTTConfig) {
	if v := getEnvString("MQTT_HOST"); v != "" {
		cfg.Host = v
	}
	if v := getEnvString("MQTT_USER"); v != "" {
		cfg.User = v
	}
	if v := getEnvString("MQTT_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := getEnvString("MQTT_CLIENT_ID"); v != "" {
		cfg.ClientID = v
	}
	if v := getEnvString("MQTT_TOPIC"); v != "" {
		cfg.Topic = v
	}
	if v, ok := os.LookupEnv("MQTT_PERSISTENCE_DIR"); ok {
		cfg.PersistenceDir = v
	}
}

func loadMQTTInts(cfg *MQTTConfig) {
	if v, ok := getEnvInt("MQTT_PORT"); ok {
		cfg.Port = v
	}
	if v, ok := getEnvInt("MQTT_QOS"); ok {
		cfg.QoS = qosFromInt(v)
	}
	if v, ok := getEnvInt("MQTT_WAIT_TIME"); ok {
		cfg.WaitTime = v
	}
	if v, ok := getEnvInt("MQTT_DISCONNECT_TIMEOUT"); ok && v >= 0 {
		cfg.DisconnectTimeout = uint(v) // #nosec G115 - checked non-negative
	}
}

func loadMQTTTimeouts(cfg *MQTTConfig) {
	if v := getEnvDuration("MQTT_KEEP_ALIVE"); v != 0 {
		cfg.KeepAlive = v
	}
	if v := getEnvDuration("MQTT_CONNECT_TIMEOUT"); v != 0 {
		cfg.ConnectTimeout = v
	}
	if v := getEnvDuration("MQTT_WRITE_TIMEOUT"); v != 0 {
		cfg.WriteTimeout = v
	}
	if v := getEnvDuration("MQTT_SUBSCRIBE_TIMEOUT"); v != 0 {
		cfg.SubscribeTimeout = v
	}
	if v := getEnvDuration("MQTT_COMPLETION_TIMEOUT"); v != 0 {
		cfg.CompletionTimeout = v
	}
	if v := getEnvDuration("MQTT_MAX_RECONNECT_INTERVAL"); v != 0 {
		cfg.MaxReconnectInterval = v
	}
}

func loadMQTTTLS(cfg *MQTTConfig) {
	if v := getEnvString("MQTT_CA_CERT"); v != "" {
		cfg.CACert = v
	}
	if v := getEnvString("MQTT_CLIENT_CERT"); v != "" {
		cfg.ClientCert = v
	}
	if v := getEnvString("MQTT_CLIENT_KEY"); v != "" {
		cfg.ClientKey = v
	}
	if v := getEnvBool("MQTT_TLS_INSECURE_SKIP"); v {
		cfg.InsecureSkip = v
	}
}

// loadJobFromEnv loads the job configuration from environment variables
func loadJobFromEnv(cfg *JobConfig) {
	if v, ok := getEnvInt("NUM_MESSAGES"); ok {
		cfg.NumMessages = v
	}
	if v := getEnvDuration("PRODUCER_INTERVAL"); v != 0 {
		cfg.Interval = v
	}
	if v := getEnvString("PRODUCER_FILE"); v != "" {
		cfg.PayloadFile = v
	}
}

// loadStatsFromEnv loads the Redis recorder configuration from environment variables
func loadStatsFromEnv(cfg *StatsConfig) {
	if v := getEnvString("REDIS_ADDRESS"); v != "" {
		cfg.RedisAddress = v
	}
	if v := getEnvString("REDIS_KEY_PREFIX"); v != "" {
		cfg.KeyPrefix = v
	}
	if v := getEnvDuration("REDIS_TTL"); v != 0 {
		cfg.TTL = v
	}
	if v := getEnvDuration("REDIS_DIAL_TIMEOUT"); v != 0 {
		cfg.DialTimeout = v
	}
	if v := getEnvDuration("REDIS_WRITE_TIMEOUT"); v != 0 {
		cfg.WriteTimeout = v
	}
}

// Helper functions for reading environment variables

func getEnvString(key string) string {
	return os.Getenv(key)
}

// getEnvInt reports ok only for a set, well-formed integer so that 0 can be configured
func getEnvInt(key string) (int, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return intValue, true
}

// qosFromInt saturates values outside the byte range so Validate rejects them
// instead of a wrapped value slipping through
func qosFromInt(v int) byte {
	if v < 0 || v > math.MaxUint8 {
		return math.MaxUint8
	}
	return byte(v) // #nosec G115 - checked range
}

func getEnvDuration(key string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return duration
}

func getEnvBool(key string) bool {
	return os.Getenv(key) == "true"
}
