package audit

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisListSink appends JSON-encoded events to a Redis list with RPUSH.
// When maxLen is positive the list is trimmed to its newest maxLen entries
// after every push, so the sink behaves as a capped audit trail.
type RedisListSink struct {
	client redis.UniversalClient
	key    string
	maxLen int64
}

func NewRedisListSink(client redis.UniversalClient, key string, maxLen int64) *RedisListSink {
	if key == "" {
		key = "gosession:audit"
	}
	return &RedisListSink{
		client: client,
		key:    key,
		maxLen: maxLen,
	}
}

// Emit is best-effort: encoding or Redis failures drop the event silently,
// matching the other sinks' contract.
func (s *RedisListSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.client == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return
	}

	if s.maxLen > 0 {
		_ = s.client.LTrim(ctx, s.key, -s.maxLen, -1).Err()
	}
}

// Key returns the Redis list key the sink writes to.
func (s *RedisListSink) Key() string {
	if s == nil {
		return ""
	}
	return s.key
}
