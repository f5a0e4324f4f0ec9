package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/game/combat"
)

// RedisStream appends entries to a Redis stream, one message per entry.
type RedisStream struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

// NewRedisClient connects to cfg.URL and checks the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// NewRedisStream creates a sink over client. A zero maxLen leaves the
// stream untrimmed.
func NewRedisStream(client redis.Cmdable, stream string, maxLen int64) *RedisStream {
	return &RedisStream{client: client, stream: stream, maxLen: maxLen}
}

// Name implements Sink.
func (s *RedisStream) Name() string { return "redis:" + s.stream }

// Write implements Sink.
func (s *RedisStream) Write(ctx context.Context, entries []combat.Entry) error {
	for _, e := range entries {
		payload, err := json.Marshal(NewRecord(e))
		if err != nil {
			return fmt.Errorf("encoding entry %s/%d: %w", e.Encounter, e.Seq, err)
		}
		if err := s.client.XAdd(ctx, s.xaddArgs(e.Encounter, payload)).Err(); err != nil {
			return fmt.Errorf("appending entry %s/%d to %s: %w", e.Encounter, e.Seq, s.stream, err)
		}
	}
	return nil
}

func (s *RedisStream) xaddArgs(encounter string, payload []byte) *redis.XAddArgs {
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: []string{"encounter", encounter, "entry", string(payload)},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	return args
}

// Recent returns up to n newest records, newest first.
func (s *RedisStream) Recent(ctx context.Context, n int64) ([]Record, error) {
	msgs, err := s.client.XRevRangeN(ctx, s.stream, "+", "-", n).Result()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.stream, err)
	}

	out := make([]Record, 0, len(msgs))
	for _, m := range msgs {
		raw, ok := m.Values["entry"].(string)
		if !ok {
			return nil, fmt.Errorf("message %s in %s has no entry field", m.ID, s.stream)
		}
		var r Record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decoding message %s: %w", m.ID, err)
		}
		out = append(out, r)
	}
	return out, nil
}
