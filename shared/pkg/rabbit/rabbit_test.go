package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent     []published
	declared []string
	err      error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, _ amqp.Table) error {
	if f.err != nil {
		return f.err
	}
	if kind != "topic" || !durable || autoDelete || internal || noWait {
		return errors.New("unexpected exchange options")
	}
	f.declared = append(f.declared, name)
	return nil
}

func TestPublisher_PublishJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "orders.events")

	err := p.PublishJSON(context.Background(), "orders.placed", map[string]string{"message": "hi"}, amqp.Table{"x-request-id": "r1"})
	require.NoError(t, err)
	require.Len(t, ch.sent, 1)

	got := ch.sent[0]
	assert.Equal(t, "orders.events", got.exchange)
	assert.Equal(t, "orders.placed", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "r1", got.msg.Headers["x-request-id"])
	assert.False(t, got.msg.Timestamp.IsZero())

	var body map[string]string
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, "hi", body["message"])
}

func TestPublisher_PublishJSON_MarshalError(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "orders.events")

	err := p.PublishJSON(context.Background(), "orders.placed", make(chan int), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal orders.placed")
	assert.Empty(t, ch.sent)
}

func TestPublisher_PropagatesChannelError(t *testing.T) {
	boom := errors.New("channel closed")
	p := NewPublisher(&fakeChannel{err: boom}, "orders.events")

	err := p.Publish(context.Background(), "orders.placed", []byte(`{}`), nil)
	assert.ErrorIs(t, err, boom)
}

func TestDeclareExchange(t *testing.T) {
	ch := &fakeChannel{}
	require.NoError(t, DeclareExchange(ch, "orders.events"))
	assert.Equal(t, []string{"orders.events"}, ch.declared)

	boom := errors.New("access refused")
	err := DeclareExchange(&fakeChannel{err: boom}, "orders.events")
	assert.ErrorIs(t, err, boom)
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), 0)
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultPublishTimeout), deadline, time.Second)

	ctx2, cancel2 := WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel2()
	deadline2, _ := ctx2.Deadline()
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline2, 40*time.Millisecond)
}
