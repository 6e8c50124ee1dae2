package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultMQTTConfig(t *testing.T) {
	cfg := defaultMQTTConfig(RoleProducer)

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Host", cfg.Host, "localhost"},
		{"Port", cfg.Port, 1883},
		{"User", cfg.User, "admin"},
		{"Password", cfg.Password, "admin"},
		{"ClientID", cfg.ClientID, "clientTest"},
		{"Topic", cfg.Topic, "testTopic"},
		{"QoS", cfg.QoS, byte(1)},
		{"WaitTime", cfg.WaitTime, 5},
		{"KeepAlive", cfg.KeepAlive, 5 * time.Second},
		{"ConnectTimeout", cfg.ConnectTimeout, 10 * time.Second},
		{"WriteTimeout", cfg.WriteTimeout, 30 * time.Second},
		{"SubscribeTimeout", cfg.SubscribeTimeout, 10 * time.Second},
		{"CompletionTimeout", cfg.CompletionTimeout, 50 * time.Second},
		{"MaxReconnectInterval", cfg.MaxReconnectInterval, 10 * time.Second},
		{"DisconnectTimeout", cfg.DisconnectTimeout, uint(250)},
		{"PersistenceDir", cfg.PersistenceDir, filepath.Join(os.TempDir(), "mqtt-client")},
		{"InsecureSkip", cfg.InsecureSkip, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("defaultMQTTConfig().%s = %v; want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestDefaultMQTTConfig_SubscriberKeepsMemoryStore(t *testing.T) {
	cfg := defaultMQTTConfig(RoleSubscriber)
	if cfg.PersistenceDir != "" {
		t.Errorf("subscriber PersistenceDir = %q; want empty", cfg.PersistenceDir)
	}
}

func TestDefaultJobConfig(t *testing.T) {
	tests := []struct {
		role     Role
		messages int
		interval time.Duration
		file     string
	}{
		{RoleProducer, 100, 4500 * time.Millisecond, "testfilelarge.txt"},
		{RoleSubscriber, 1000, 0, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			cfg := defaultJobConfig(tt.role)
			if cfg.NumMessages != tt.messages {
				t.Errorf("NumMessages = %d; want %d", cfg.NumMessages, tt.messages)
			}
			if cfg.Interval != tt.interval {
				t.Errorf("Interval = %v; want %v", cfg.Interval, tt.interval)
			}
			if cfg.PayloadFile != tt.file {
				t.Errorf("PayloadFile = %q; want %q", cfg.PayloadFile, tt.file)
			}
		})
	}
}

func TestDefaultStatsConfig(t *testing.T) {
	cfg := defaultStatsConfig()
	if cfg.Enabled() {
		t.Error("stats should be disabled by default")
	}
	if cfg.KeyPrefix != "mqtt-client" {
		t.Errorf("KeyPrefix = %s; want mqtt-client", cfg.KeyPrefix)
	}
	if cfg.TTL != 24*time.Hour {
		t.Errorf("TTL = %v; want 24h", cfg.TTL)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig(RoleSubscriber)
	if cfg == nil {
		t.Fatal("defaultConfig() returned nil")
	}
	if cfg.Role != RoleSubscriber {
		t.Errorf("Role = %s; want subscriber", cfg.Role)
	}
	if cfg.Job.NumMessages != 1000 {
		t.Errorf("Job.NumMessages = %d; want 1000", cfg.Job.NumMessages)
	}
}
