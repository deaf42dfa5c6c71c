package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeReader serves queued messages, then blocks until the context ends.
type fakeReader struct {
	mu        sync.Mutex
	messages  chan kafka.Message
	committed []int64
	closed    bool
}

func newFakeReader(values ...string) *fakeReader {
	r := &fakeReader{messages: make(chan kafka.Message, len(values))}
	for i, v := range values {
		r.messages <- kafka.Message{Topic: "content-notifications", Offset: int64(i), Value: []byte(v)}
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-r.messages:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func TestConsumer(t *testing.T) {
	bus := NewBus()
	var mu sync.Mutex
	var received []Notification

	bus.Subscribe(KindDocument, EventPublished, func(ctx context.Context, n Notification) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, n)
		return nil
	})
	bus.Subscribe(KindMedia, EventSaved, func(ctx context.Context, n Notification) error {
		return errors.New("database unavailable")
	})

	reader := newFakeReader(
		`{"kind":"document","event":"published","ids":[10,11]}`,
		`not json`,
		`{"kind":"media","event":"saved","ids":[5]}`,
		`{"ids":[5]}`,
		`{"kind":"folder","event":"saved","ids":[1]}`,
		`{"kind":"document","event":"saved","ids":[]}`,
		`{"kind":"document","event":"published","ids":[0]}`,
	)

	core, logs := observer.New(zap.InfoLevel)
	consumer := NewConsumerWithReader(reader, bus, zap.New(core))
	consumer.Start(context.Background())

	// Everything but the failed handler at 2 is committed.
	require.Eventually(t, func() bool { return len(reader.commits()) == 6 }, time.Second, 5*time.Millisecond)
	require.NoError(t, consumer.Stop())

	assert.Equal(t, []int64{0, 1, 3, 4, 5, 6}, reader.commits())
	assert.True(t, reader.closed)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, Notification{Kind: KindDocument, Event: EventPublished, IDs: []int{10, 11}}, received[0])

	assert.Len(t, logs.FilterMessage("Failed to decode notification").All(), 1)
	assert.Len(t, logs.FilterMessage("Invalid notification").All(), 4)
	assert.Len(t, logs.FilterMessage("Failed to handle notification").All(), 1)
}

func TestNewConsumer_Validation(t *testing.T) {
	_, err := NewConsumer(Config{Topic: "t"}, NewBus(), nil)
	assert.ErrorContains(t, err, "broker")

	_, err = NewConsumer(Config{Brokers: "localhost:9092"}, NewBus(), nil)
	assert.ErrorContains(t, err, "topic")
}
