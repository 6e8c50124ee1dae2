package mqtt

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/ibs-source/mqtt-client/internal/log"
	"github.com/sirupsen/logrus"
)

// Client publishes to and subscribes on a single broker connection
type Client struct {
	client            mqtt.Client
	completionTimeout time.Duration
	subscribeTimeout  time.Duration
	disconnectTimeout uint
	abandoned         atomic.Bool
	log               *log.Logger
}

// NewClient connects to the broker described by the factory.
// Connection failures are returned, retries are left to paho.
func NewClient(f *Factory, logger *log.Logger) (*Client, error) {
	opts, err := f.ClientOptions(logger)
	if err != nil {
		return nil, err
	}

	logger.InfoWithFields(logrus.Fields{
		"broker":    f.URI(),
		"clientId":  f.ClientID(),
		"keepAlive": f.KeepAlive(),
	}, "Connecting to MQTT broker")

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(f.cfg.ConnectTimeout) {
		return nil, fmt.Errorf("mqtt connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT: %w", err)
	}

	return newClient(client, f, logger), nil
}

// newClient wraps an already constructed paho client
func newClient(client mqtt.Client, f *Factory, logger *log.Logger) *Client {
	return &Client{
		client:            client,
		completionTimeout: f.cfg.CompletionTimeout,
		subscribeTimeout:  f.cfg.SubscribeTimeout,
		disconnectTimeout: f.cfg.DisconnectTimeout,
		log:               logger,
	}
}

// Publish sends payload and waits for completion, bounded by ctx and the completion timeout
func (c *Client) Publish(ctx context.Context, topic string, qos byte, payload []byte) error {
	token := c.client.Publish(topic, qos, false, payload)

	timer := time.NewTimer(c.completionTimeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt publish failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("mqtt publish timeout after %s", c.completionTimeout)
	}
}

// Subscribe registers handler for topic
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	token := c.client.Subscribe(topic, qos, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})

	if !token.WaitTimeout(c.subscribeTimeout) {
		return fmt.Errorf("mqtt subscription timeout for topic %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}

	c.log.InfoWithFields(logrus.Fields{"topic": topic, "qos": qos}, "Subscribed")
	return nil
}

// Abandon leaves the connection open so that process exit drops it without a
// DISCONNECT packet and the broker publishes the last will. Close becomes a no-op.
func (c *Client) Abandon() {
	if c.abandoned.CompareAndSwap(false, true) {
		c.log.Info("Leaving MQTT connection open, the broker will publish the last will")
	}
}

// Close disconnects from the MQTT broker unless the client was abandoned
func (c *Client) Close() error {
	if c.abandoned.Load() {
		return nil
	}
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(c.disconnectTimeout)
	}
	return nil
}
