// Package main starts the producer binary.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ibs-source/mqtt-client/internal/config"
	"github.com/ibs-source/mqtt-client/internal/log"
	"github.com/ibs-source/mqtt-client/internal/mqtt"
	"github.com/ibs-source/mqtt-client/internal/producer"
	"github.com/ibs-source/mqtt-client/internal/stats"
)

func run() int {
	logger := log.New()
	logger.Info("Starting producer")

	cfg, err := config.Load(config.RoleProducer, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return 1
	}
	logConfig(cfg, logger)

	payload, err := producer.LoadPayload(cfg.Job.PayloadFile)
	if err != nil {
		logger.Error("Failed to load payload: %v", err)
		return 1
	}
	logger.Info("Loaded %d bytes from %s", len(payload), cfg.Job.PayloadFile)

	recorder, err := stats.New(&cfg.Stats, logger)
	if err != nil {
		logger.Error("Failed to create stats recorder: %v", err)
		return 1
	}
	defer closeRecorder(recorder, logger)

	factory := mqtt.NewFactory(&cfg.MQTT)
	client, err := mqtt.NewClient(factory, logger)
	if err != nil {
		logger.Error("Failed to connect to %s: %v", factory.URI(), err)
		return 1
	}
	defer closeClient(client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := producer.New(client, payload, cfg, recorder, os.Stdout, logger)
	if err := job.Run(ctx); err != nil {
		logger.Error("Producer stopped after %d of %d messages: %v", job.Sent(), cfg.Job.NumMessages, err)
		return 1
	}

	// Exit without DISCONNECT so the broker publishes the retained last will
	client.Abandon()
	logger.Info("Producer finished")
	return 0
}

func logConfig(cfg *config.Config, logger *log.Logger) {
	if cfg.MQTT.GeneratedClientID {
		logger.Info("Generated client ID: %s", cfg.MQTT.ClientID)
	}
	logger.Info("MQTT: %s:%d, Topic: %s, QoS: %d", cfg.MQTT.Host, cfg.MQTT.Port, cfg.MQTT.Topic, cfg.MQTT.QoS)
	logger.Info("Job: %d messages every %s", cfg.Job.NumMessages, cfg.Job.Interval)
}

func closeClient(client *mqtt.Client, logger *log.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("Error closing MQTT client: %v", err)
	}
}

func closeRecorder(recorder stats.Recorder, logger *log.Logger) {
	if err := recorder.Close(); err != nil {
		logger.Error("Error closing stats recorder: %v", err)
	}
}

func main() {
	// Keep main minimal to ensure defers in run() execute correctly.
	os.Exit(run())
}
