package config

import "fmt"

// Validate checks configuration constraints
func Validate(cfg *Config) error {
	if err := validateMQTT(&cfg.MQTT); err != nil {
		return err
	}
	if err := validateJob(cfg.Role, &cfg.Job); err != nil {
		return err
	}
	return validateStats(&cfg.Stats)
}

// validateMQTT validates MQTT configuration
func validateMQTT(cfg *MQTTConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("mqtt host cannot be empty")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("mqtt port %d out of range", cfg.Port)
	}
	if cfg.ClientID == "" {
		return fmt.Errorf("mqtt client ID cannot be empty")
	}
	if cfg.Topic == "" {
		return fmt.Errorf("mqtt topic cannot be empty")
	}
	if cfg.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2")
	}
	if cfg.KeepAlive <= 0 {
		return fmt.Errorf("mqtt keep-alive must be positive")
	}
	if (cfg.ClientCert == "") != (cfg.ClientKey == "") {
		return fmt.Errorf("mqtt client cert and key must be set together")
	}
	return nil
}

// validateJob validates the job configuration for the role
func validateJob(role Role, cfg *JobConfig) error {
	if cfg.NumMessages < 1 {
		return fmt.Errorf("numMessages must be positive")
	}
	if role != RoleProducer {
		return nil
	}
	if cfg.Interval < 0 {
		return fmt.Errorf("producer interval cannot be negative")
	}
	if cfg.PayloadFile == "" {
		return fmt.Errorf("producer payload file cannot be empty")
	}
	return nil
}

// validateStats validates the Redis recorder configuration
func validateStats(cfg *StatsConfig) error {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.KeyPrefix == "" {
		return fmt.Errorf("redis key prefix cannot be empty")
	}
	if cfg.TTL < 0 {
		return fmt.Errorf("redis ttl cannot be negative")
	}
	return nil
}
