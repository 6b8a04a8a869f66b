package goSession

import (
	"io"

	internalaudit "github.com/MrEthical07/goSession/internal/audit"
	"github.com/redis/go-redis/v9"
)

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// RedisListSink is an [AuditSink] that appends JSON-encoded events to a
// capped Redis list.
type RedisListSink = internalaudit.RedisListSink

type auditDispatcher = internalaudit.Dispatcher

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// NewRedisListSink creates a [RedisListSink] that RPUSHes events onto key.
// A maxLen of 0 leaves the list unbounded.
func NewRedisListSink(client redis.UniversalClient, key string, maxLen int64) *RedisListSink {
	return internalaudit.NewRedisListSink(client, key, maxLen)
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	return internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Enabled,
		BufferSize: cfg.BufferSize,
		DropIfFull: cfg.DropIfFull,
	}, sink)
}
