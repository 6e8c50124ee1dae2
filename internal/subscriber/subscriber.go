// Package subscriber counts messages received on a topic until a target is reached.
package subscriber

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ibs-source/mqtt-client/internal/config"
	"github.com/ibs-source/mqtt-client/internal/log"
	"github.com/ibs-source/mqtt-client/internal/mqtt"
	"github.com/ibs-source/mqtt-client/internal/stats"
)

const progressEvery = 10

// Counter counts inbound messages. Handle must be called from a single goroutine,
// which paho guarantees when handlers are ordered.
type Counter struct {
	topic    string
	qos      byte
	target   int
	clientID string

	received int
	finished bool
	done     chan struct{}
	doneOnce sync.Once

	recorder stats.Recorder
	out      io.Writer
	log      *log.Logger
}

// New creates a counter for the configured topic and target
func New(cfg *config.Config, recorder stats.Recorder, out io.Writer, logger *log.Logger) *Counter {
	return &Counter{
		topic:    cfg.MQTT.Topic,
		qos:      cfg.MQTT.QoS,
		target:   cfg.Job.NumMessages,
		clientID: cfg.MQTT.ClientID,
		done:     make(chan struct{}),
		recorder: recorder,
		out:      out,
		log:      logger,
	}
}

// Handle counts one message. A progress line is printed when the count before
// this message is a multiple of ten, so the first message prints 0. Done is
// closed when the count equals the target exactly; later messages are ignored.
func (c *Counter) Handle(_ string, payload []byte) {
	if c.finished {
		return
	}

	if c.received%progressEvery == 0 {
		_, _ = fmt.Fprintf(c.out, "Received %d numMessages from %s topic.\n", c.received, c.topic)
	}
	c.received++
	c.log.Debug("Received message %d (%d bytes)", c.received, len(payload))

	if c.received%progressEvery == 0 || c.received == c.target {
		c.record()
	}

	if c.received == c.target {
		c.finished = true
		c.doneOnce.Do(func() { close(c.done) })
	}
}

// Done is closed once the target has been reached
func (c *Counter) Done() <-chan struct{} {
	return c.done
}

// Received returns the count. Safe to call from the handler goroutine or after Done.
func (c *Counter) Received() int {
	return c.received
}

// Run subscribes and blocks until the target is reached or ctx is done
func (c *Counter) Run(ctx context.Context, sub mqtt.Subscriber) error {
	if err := sub.Subscribe(c.topic, c.qos, c.Handle); err != nil {
		return err
	}
	c.log.Info("Waiting for %d messages on %s", c.target, c.topic)

	select {
	case <-c.done:
		c.log.Info("Received all %d messages from %s", c.target, c.topic)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Counter) record() {
	c.recorder.Record(stats.Progress{
		Role:     string(config.RoleSubscriber),
		ClientID: c.clientID,
		Topic:    c.topic,
		Count:    c.received,
		Target:   c.target,
		Done:     c.received == c.target,
		At:       time.Now(),
	})
}
