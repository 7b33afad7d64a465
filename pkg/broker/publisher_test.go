package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(nil, ch, "reservation_events", zap.NewNop())

	err := p.Publish(context.Background(), "reservation.created", map[string]int{"reservationId": 7})
	require.NoError(t, err)

	assert.Equal(t, "reservation_events", ch.exchange)
	assert.Equal(t, "reservation.created", ch.key)
	assert.Equal(t, uint8(amqp.Persistent), ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.NotEmpty(t, ch.msg.MessageId)

	var body map[string]int
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, 7, body["reservationId"])

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newAMQPPublisher(nil, ch, "x", zap.NewNop())

	err := p.Publish(context.Background(), "reservation.rejected", struct{}{})
	assert.ErrorContains(t, err, "channel closed")
}

func TestAMQPPublisher_CancelledContext(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(nil, ch, "x", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, "reservation.created", nil), context.Canceled)
	assert.Empty(t, ch.key)
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher(zap.NewNop())
	assert.NoError(t, p.Publish(context.Background(), "reservation.created", nil))
	assert.NoError(t, p.Close())
}
