package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutBrokersIsNoop(t *testing.T) {
	p := New(nil, "review_events", nil)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.PublishReviewCreated(context.Background(), ReviewCreated{ReviewID: 1}))
	assert.NoError(t, p.Close())
}

func TestNew_WithBrokers(t *testing.T) {
	p := New([]string{"kafka-1:9092", "kafka-2:9092"}, "review_events", nil)
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "review_events", kp.writer.Topic)
	assert.True(t, kp.writer.Async)
}

func TestReviewCreatedMessage(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	msg, err := reviewCreatedMessage(ReviewCreated{
		ReviewID:  42,
		MovieID:   "603",
		UserID:    7,
		Rating:    5,
		CreatedAt: created,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("603"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "42", string(msg.Headers[1].Value))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, TypeReviewCreated, payload["type"])
	assert.EqualValues(t, 42, payload["review_id"])
	assert.Equal(t, "603", payload["movie_id"])
	assert.EqualValues(t, 7, payload["user_id"])
	assert.EqualValues(t, 5, payload["rating"])
	assert.Equal(t, "2025-03-01T10:00:00Z", payload["created_at"])
}
