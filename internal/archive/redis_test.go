package archive

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/galaxies/internal/game/combat"
	"github.com/udisondev/galaxies/internal/model"
	"github.com/udisondev/galaxies/internal/testutil"
)

func payload(t *testing.T, e combat.Entry) string {
	t.Helper()
	raw, err := json.Marshal(NewRecord(e))
	require.NoError(t, err)
	return string(raw)
}

func TestRedisStream_Write(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStream(client, "galaxies:combat", 1000)
	ctx := context.Background()

	e := entry(7)
	e.Timestamp = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	e.Effects = []model.SkillEffect{model.StunEffect{Duration: 1}}

	mock.ExpectXAdd(&redis.XAddArgs{
		Stream: "galaxies:combat",
		MaxLen: 1000,
		Approx: true,
		Values: []string{"encounter", "enc-1", "entry", payload(t, e)},
	}).SetVal("1-0")

	require.NoError(t, s.Write(ctx, []combat.Entry{e}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStream_WriteUnbounded(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStream(client, "stream", 0)

	e := entry(1)
	mock.ExpectXAdd(&redis.XAddArgs{
		Stream: "stream",
		Values: []string{"encounter", "enc-1", "entry", payload(t, e)},
	}).SetVal("1-0")

	require.NoError(t, s.Write(context.Background(), []combat.Entry{e}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStream_WriteError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStream(client, "stream", 0)

	first, second := entry(1), entry(2)
	mock.ExpectXAdd(&redis.XAddArgs{
		Stream: "stream",
		Values: []string{"encounter", "enc-1", "entry", payload(t, first)},
	}).SetErr(testutil.ErrSinkDown)

	err := s.Write(context.Background(), []combat.Entry{first, second})
	require.ErrorIs(t, err, testutil.ErrSinkDown)
	assert.Contains(t, err.Error(), "enc-1/1")
	assert.NoError(t, mock.ExpectationsWereMet(), "a failed append stops the batch")
}

func TestRedisStream_Recent(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStream(client, "stream", 0)

	e := entry(3)
	e.Damage = 12.5
	mock.ExpectXRevRangeN("stream", "+", "-", 2).SetVal([]redis.XMessage{
		{ID: "2-0", Values: map[string]interface{}{"encounter": "enc-1", "entry": payload(t, e)}},
	})

	records, err := s.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uint64(3), records[0].Seq)
	assert.Equal(t, 12.5, records[0].Damage)
	assert.Equal(t, "player_attack", records[0].Type)

	mock.ExpectXRevRangeN("stream", "+", "-", 1).SetVal([]redis.XMessage{
		{ID: "3-0", Values: map[string]interface{}{"other": "x"}},
	})
	_, err = s.Recent(context.Background(), 1)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
