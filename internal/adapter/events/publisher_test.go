package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stream = "loans.events"

func TestPublisher_Publish(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	p := NewPublisher(rdb, 1000)
	ctx := context.Background()

	err := p.Publish(ctx, stream, "loan.applied", map[string]string{"loan_id": "abc"})
	require.NoError(t, err)

	msgs, err := rdb.XRange(ctx, stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	raw, ok := msgs[0].Values["event"].(string)
	require.True(t, ok, "event field should be a string, got %T", msgs[0].Values["event"])

	var ev struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))
	assert.Equal(t, "loan.applied", ev.Type)
	assert.Equal(t, "abc", ev.Data["loan_id"])
}

func TestPublisher_UnmarshalableData(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	err := NewPublisher(rdb, 0).Publish(context.Background(), stream, "loan.decided", make(chan int))
	assert.ErrorContains(t, err, "failed to marshal event")
}

func TestPublisher_StoreDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	err := NewPublisher(rdb, 0).Publish(context.Background(), stream, "loan.decided", nil)
	assert.ErrorContains(t, err, "failed to publish event")
}
