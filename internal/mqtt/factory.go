// Package mqtt provides the broker connection factory and a paho-backed client
// for publishing and subscribing.
package mqtt

import (
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/ibs-source/mqtt-client/internal/config"
	"github.com/ibs-source/mqtt-client/internal/log"
	"github.com/sirupsen/logrus"
)

const (
	// SchemePlain is used when the port is the conventional MQTT port
	SchemePlain = "tcp"
	// SchemeSecure is used for any other port
	SchemeSecure = "ssl"

	// WillPayload is published by the broker if the client disconnects uncleanly
	WillPayload = "I have died..."
)

// Will is the last-will-and-testament registered at connect time
type Will struct {
	Topic   string
	Payload []byte
	QoS     byte
	Retain  bool
}

// Factory is a reusable broker connection descriptor. It does not open a socket.
type Factory struct {
	cfg  config.MQTTConfig
	will Will
}

// NewFactory creates a descriptor from the connection parameters.
// The will is registered on the configured topic with the configured QoS.
func NewFactory(cfg *config.MQTTConfig) *Factory {
	return &Factory{
		cfg: *cfg,
		will: Will{
			Topic:   cfg.Topic,
			Payload: []byte(WillPayload),
			QoS:     cfg.QoS,
			Retain:  true,
		},
	}
}

// Secure reports whether the secure transport is selected
func (f *Factory) Secure() bool {
	return f.cfg.Port != config.PlainPort
}

// Scheme returns the URI scheme for the configured port
func (f *Factory) Scheme() string {
	if f.Secure() {
		return SchemeSecure
	}
	return SchemePlain
}

// URI returns the broker URI with host and port embedded verbatim
func (f *Factory) URI() string {
	return fmt.Sprintf("%s://%s:%d", f.Scheme(), f.cfg.Host, f.cfg.Port)
}

// ClientID returns the resolved client identifier
func (f *Factory) ClientID() string {
	return f.cfg.ClientID
}

// KeepAlive returns the keep-alive interval
func (f *Factory) KeepAlive() time.Duration {
	return f.cfg.KeepAlive
}

// Will returns the last-will message
func (f *Factory) Will() Will {
	return f.will
}

// ClientOptions renders the descriptor as paho client options
func (f *Factory) ClientOptions(logger *log.Logger) (*mqtt.ClientOptions, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(f.URI())
	opts.SetClientID(f.cfg.ClientID)
	opts.SetUsername(f.cfg.User)
	opts.SetPassword(f.cfg.Password)
	opts.SetBinaryWill(f.will.Topic, f.will.Payload, f.will.QoS, f.will.Retain)

	opts.SetKeepAlive(f.cfg.KeepAlive)
	opts.SetConnectTimeout(f.cfg.ConnectTimeout)
	opts.SetWriteTimeout(f.cfg.WriteTimeout)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(f.cfg.MaxReconnectInterval)
	// Handlers run one at a time so the subscriber counter has a single writer
	opts.SetOrderMatters(true)

	// A clean session resets the store, which removes every *.msg file in the
	// directory. PersistenceDir is resolved per client id for that reason.
	if f.cfg.PersistenceDir != "" {
		if err := os.MkdirAll(f.cfg.PersistenceDir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create persistence directory: %w", err)
		}
		opts.SetStore(mqtt.NewFileStore(f.cfg.PersistenceDir))
	}

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		if err != nil {
			logger.ErrorWithFields(logrus.Fields{
				"broker":   f.URI(),
				"clientId": f.cfg.ClientID,
			}, "MQTT connection lost: %v", err)
		}
	})

	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		logger.Info("MQTT reconnecting...")
	})

	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		logger.Info("MQTT connected to %s", f.URI())
	})

	if f.Secure() {
		tlsConfig, err := newTLSConfig(&f.cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
		opts.SetTLSConfig(tlsConfig)
	}

	return opts, nil
}
