// Package producer publishes a fixed payload to a topic a configured number of times.
package producer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ibs-source/mqtt-client/internal/config"
	"github.com/ibs-source/mqtt-client/internal/log"
	"github.com/ibs-source/mqtt-client/internal/mqtt"
	"github.com/ibs-source/mqtt-client/internal/stats"
)

const progressEvery = 10

// Waiter blocks between publishes. An error with a live context is an interrupted wait.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// TimerWaiter sleeps on a timer and returns early only when ctx is done
type TimerWaiter struct{}

// Wait implements Waiter
func (TimerWaiter) Wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Job publishes the payload until Sent reaches the target
type Job struct {
	publisher mqtt.Publisher
	waiter    Waiter
	recorder  stats.Recorder
	out       io.Writer

	payload  []byte
	topic    string
	qos      byte
	target   int
	interval time.Duration
	clientID string

	sent int
	log  *log.Logger
}

// New creates a publish job. Progress lines are written to out.
func New(
	publisher mqtt.Publisher,
	payload []byte,
	cfg *config.Config,
	recorder stats.Recorder,
	out io.Writer,
	logger *log.Logger,
) *Job {
	return &Job{
		publisher: publisher,
		waiter:    TimerWaiter{},
		recorder:  recorder,
		out:       out,
		payload:   payload,
		topic:     cfg.MQTT.Topic,
		qos:       cfg.MQTT.QoS,
		target:    cfg.Job.NumMessages,
		interval:  cfg.Job.Interval,
		clientID:  cfg.MQTT.ClientID,
		log:       logger,
	}
}

// SetWaiter replaces the timer used between publishes
func (j *Job) SetWaiter(w Waiter) {
	j.waiter = w
}

// Sent returns the number of successful publishes
func (j *Job) Sent() int {
	return j.sent
}

// Run publishes until the target is reached and then returns nil.
// Interrupted waits are logged and not counted. A failed publish ends the run,
// so a successful run makes exactly target publish calls.
func (j *Job) Run(ctx context.Context) error {
	j.log.Info("Publishing %d bytes to %s every %s, %d times", len(j.payload), j.topic, j.interval, j.target)

	for j.sent < j.target {
		if err := j.waiter.Wait(ctx, j.interval); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			j.log.Warn("Wait before publish %d interrupted: %v", j.sent+1, err)
			continue
		}

		if err := j.publisher.Publish(ctx, j.topic, j.qos, j.payload); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to publish message %d: %w", j.sent+1, err)
		}
		j.sent++
		j.log.Debug("Published message %d to %s", j.sent, j.topic)

		if j.sent%progressEvery == 0 {
			_, _ = fmt.Fprintf(j.out, "Sent %d numMessages.\n", j.sent)
		}
		if j.sent%progressEvery == 0 || j.sent == j.target {
			j.record()
		}
	}

	j.log.Info("Sent all %d messages", j.sent)
	return nil
}

func (j *Job) record() {
	j.recorder.Record(stats.Progress{
		Role:     string(config.RoleProducer),
		ClientID: j.clientID,
		Topic:    j.topic,
		Count:    j.sent,
		Target:   j.target,
		Done:     j.sent == j.target,
		At:       time.Now(),
	})
}
