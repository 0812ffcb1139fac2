package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/constants"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	calls    int
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.calls++
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewReturnsNopWhenDisabled(t *testing.T) {
	pub := New(config.KafkaConfig{Enabled: false, Brokers: []string{"localhost:9092"}})
	_, ok := pub.(NopPublisher)
	assert.True(t, ok)

	pub = New(config.KafkaConfig{Enabled: true, Brokers: []string{"  "}})
	_, ok = pub.(NopPublisher)
	assert.True(t, ok)
	assert.NoError(t, pub.Publish(context.Background(), NewEvent(constants.EventProductCreated, 1, nil)))
}

func TestKafkaPublisherWritesKeyedJSON(t *testing.T) {
	writer := &fakeWriter{}
	pub := newKafkaPublisher(writer, 0)

	event := NewEvent(constants.EventReviewSubmitted, 42, map[string]interface{}{"product_id": 7, "score": 5})
	require.NoError(t, pub.Publish(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "42", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, constants.EventReviewSubmitted, string(msg.Headers[0].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, constants.EventReviewSubmitted, decoded["type"])
	assert.EqualValues(t, 42, decoded["entity_id"])
	assert.NotEmpty(t, decoded["occurred_at"])

	require.NoError(t, pub.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("broker down")
	pub := newKafkaPublisher(&fakeWriter{err: boom}, 0)
	err := pub.Publish(context.Background(), NewEvent(constants.EventProductDeleted, 1, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestKafkaPublisherRejectsEmptyType(t *testing.T) {
	pub := newKafkaPublisher(&fakeWriter{}, 0)
	assert.Error(t, pub.Publish(context.Background(), Event{EntityID: 1}))
}

func TestNewWriterFlushesWithoutWaitingForBatch(t *testing.T) {
	writer := newWriter([]string{"kafka:9092"}, "catalog_events", 3*time.Second, 0)
	assert.Equal(t, defaultBatchTimeout, writer.BatchTimeout)
	assert.Equal(t, 3*time.Second, writer.WriteTimeout)
	assert.Equal(t, "catalog_events", writer.Topic)
	assert.False(t, writer.Async)

	writer = newWriter([]string{"kafka:9092"}, "catalog_events", time.Second, 25)
	assert.Equal(t, 25*time.Millisecond, writer.BatchTimeout)
}

func TestKafkaPublisherWritesBatchInOneCall(t *testing.T) {
	writer := &fakeWriter{}
	pub := newKafkaPublisher(writer, 0)

	require.NoError(t, pub.Publish(context.Background()))
	assert.Equal(t, 0, writer.calls)

	require.NoError(t, pub.Publish(context.Background(),
		NewEvent(constants.EventReviewApproved, 1, nil),
		NewEvent(constants.EventReviewApproved, 2, nil),
		NewEvent(constants.EventReviewApproved, 3, nil),
	))
	assert.Equal(t, 1, writer.calls)
	require.Len(t, writer.messages, 3)
	assert.Equal(t, "3", string(writer.messages[2].Key))

	err := pub.Publish(context.Background(), NewEvent(constants.EventReviewApproved, 4, nil), Event{EntityID: 5})
	assert.Error(t, err)
	assert.Equal(t, 1, writer.calls)
}
