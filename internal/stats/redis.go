package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ibs-source/mqtt-client/internal/config"
	"github.com/ibs-source/mqtt-client/internal/log"
	"github.com/redis/go-redis/v9"
)

const queueCapacity = 64

// RedisRecorder writes snapshots from a background worker so callers never wait on Redis
type RedisRecorder struct {
	rdb          *redis.Client
	prefix       string
	ttl          time.Duration
	writeTimeout time.Duration
	queue        chan Progress
	wg           sync.WaitGroup
	closeOnce    sync.Once
	log          *log.Logger
}

// New returns a Redis-backed recorder when an address is configured, otherwise Nop
func New(cfg *config.StatsConfig, logger *log.Logger) (Recorder, error) {
	if !cfg.Enabled() {
		return Nop{}, nil
	}
	return NewRedisRecorder(cfg, logger)
}

// NewRedisRecorder connects to Redis and starts the write worker
func NewRedisRecorder(cfg *config.StatsConfig, logger *log.Logger) (*RedisRecorder, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddress,
		DialTimeout:  cfg.DialTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	r := &RedisRecorder{
		rdb:          rdb,
		prefix:       cfg.KeyPrefix,
		ttl:          cfg.TTL,
		writeTimeout: cfg.WriteTimeout,
		queue:        make(chan Progress, queueCapacity),
		log:          logger,
	}
	r.wg.Add(1)
	go r.writeLoop()

	logger.Info("Recording progress to Redis at %s", cfg.RedisAddress)
	return r, nil
}

// Record enqueues a snapshot; it is dropped when the queue is full
func (r *RedisRecorder) Record(p Progress) {
	select {
	case r.queue <- p:
	default:
		r.log.Warn("Progress queue full, dropping snapshot at count %d", p.Count)
	}
}

// writeLoop drains the queue until Close
func (r *RedisRecorder) writeLoop() {
	defer r.wg.Done()
	for p := range r.queue {
		if err := r.write(p); err != nil {
			r.log.Error("Failed to record progress: %v", err)
		}
	}
}

// write stores the JSON snapshot and the per-topic count in one transaction
func (r *RedisRecorder) write(p Progress) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, snapshotKey(r.prefix, p.Role, p.ClientID), encodeProgress(p), r.ttl)
		pipe.HSet(ctx, topicsKey(r.prefix, p.Role), p.Topic, p.Count)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write failed: %w", err)
	}
	return nil
}

// Close flushes queued snapshots and closes the Redis connection
func (r *RedisRecorder) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.queue)
		r.wg.Wait()
		err = r.rdb.Close()
	})
	return err
}
