package stats

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/ibs-source/mqtt-client/internal/config"
	"github.com/ibs-source/mqtt-client/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "mqtt-client:producer:abc", snapshotKey("mqtt-client", "producer", "abc"))
	assert.Equal(t, "mqtt-client:subscriber:topics", topicsKey("mqtt-client", "subscriber"))
}

func TestEncodeProgress(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	raw := encodeProgress(Progress{
		Role:     "subscriber",
		ClientID: "c-1",
		Topic:    "t1",
		Count:    20,
		Target:   1000,
		At:       at,
	})

	var decoded struct {
		Role      string `json:"role"`
		ClientID  string `json:"clientId"`
		Topic     string `json:"topic"`
		Count     int    `json:"count"`
		Target    int    `json:"target"`
		Done      bool   `json:"done"`
		UpdatedAt string `json:"updatedAt"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "subscriber", decoded.Role)
	assert.Equal(t, "c-1", decoded.ClientID)
	assert.Equal(t, "t1", decoded.Topic)
	assert.Equal(t, 20, decoded.Count)
	assert.Equal(t, 1000, decoded.Target)
	assert.False(t, decoded.Done)
	assert.Equal(t, "2026-01-02T03:04:05Z", decoded.UpdatedAt)
}

func TestNew_DisabledReturnsNop(t *testing.T) {
	cfg := &config.StatsConfig{}
	rec, err := New(cfg, log.NewWithOutput(io.Discard))
	require.NoError(t, err)

	assert.IsType(t, Nop{}, rec)
	rec.Record(Progress{Count: 1})
	assert.NoError(t, rec.Close())
}

func TestNew_UnreachableRedis(t *testing.T) {
	cfg := &config.StatsConfig{
		RedisAddress: "127.0.0.1:1",
		KeyPrefix:    "mqtt-client",
		DialTimeout:  200 * time.Millisecond,
		WriteTimeout: 200 * time.Millisecond,
	}
	_, err := New(cfg, log.NewWithOutput(io.Discard))
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
