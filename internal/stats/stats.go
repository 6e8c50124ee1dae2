// Package stats records producer and subscriber progress milestones to Redis.
package stats

import (
	"time"

	"github.com/ibs-source/mqtt-client/pkg/jsonfast"
)

// Progress is a snapshot taken at a progress milestone
type Progress struct {
	Role     string
	ClientID string
	Topic    string
	Count    int
	Target   int
	Done     bool
	At       time.Time
}

// Recorder accepts progress snapshots without blocking the caller
type Recorder interface {
	Record(p Progress)
	Close() error
}

// Nop discards all snapshots; used when Redis is not configured
type Nop struct{}

// Record implements Recorder
func (Nop) Record(Progress) {}

// Close implements Recorder
func (Nop) Close() error { return nil }

var (
	_ Recorder = Nop{}
	_ Recorder = (*RedisRecorder)(nil)
)

// snapshotKey is the per-client key holding the latest JSON snapshot
func snapshotKey(prefix, role, clientID string) string {
	return prefix + ":" + role + ":" + clientID
}

// topicsKey is the per-role hash of topic -> latest count
func topicsKey(prefix, role string) string {
	return prefix + ":" + role + ":topics"
}

// encodeProgress renders a snapshot as JSON
func encodeProgress(p Progress) []byte {
	b := jsonfast.New(256)
	b.BeginObject()
	b.AddStringField("role", p.Role)
	b.AddStringField("clientId", p.ClientID)
	b.AddStringField("topic", p.Topic)
	b.AddIntField("count", p.Count)
	b.AddIntField("target", p.Target)
	b.AddBoolField("done", p.Done)
	b.AddTimeField("updatedAt", p.At)
	b.EndObject()

	result := make([]byte, len(b.Bytes()))
	copy(result, b.Bytes())
	return result
}
