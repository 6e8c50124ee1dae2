// Package main starts the subscriber binary.
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
	"github.com/ibs-source/mqtt-client/internal/stats"
	"github.com/ibs-source/mqtt-client/internal/subscriber"
)

func run() int {
	logger := log.New()
	logger.Info("Starting subscriber")

	cfg, err := config.Load(config.RoleSubscriber, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return 1
	}
	if cfg.MQTT.GeneratedClientID {
		logger.Info("Generated client ID: %s", cfg.MQTT.ClientID)
	}
	logger.Info("MQTT: %s:%d, Topic: %s, QoS: %d, Target: %d",
		cfg.MQTT.Host, cfg.MQTT.Port, cfg.MQTT.Topic, cfg.MQTT.QoS, cfg.Job.NumMessages)

	recorder, err := stats.New(&cfg.Stats, logger)
	if err != nil {
		logger.Error("Failed to create stats recorder: %v", err)
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Error("Error closing stats recorder: %v", err)
		}
	}()

	client, err := mqtt.NewClient(mqtt.NewFactory(&cfg.MQTT), logger)
	if err != nil {
		logger.Error("Failed to create MQTT client: %v", err)
		return 1
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing MQTT client: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	counter := subscriber.New(cfg, recorder, os.Stdout, logger)
	if err := counter.Run(ctx, client); err != nil {
		logger.Error("Subscriber stopped: %v", err)
		return 1
	}

	// Exit without DISCONNECT so the broker publishes the retained last will
	client.Abandon()
	logger.Info("Subscriber finished")
	return 0
}

func main() {
	// Keep main minimal to ensure defers in run() execute correctly.
	os.Exit(run())
}
