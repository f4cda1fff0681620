package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubWriter struct {
	mu   sync.Mutex
	err  error
	msgs []kafka.Message
}

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *stubWriter) Close() error { return nil }

func TestKafkaPublisherWritesHeaders(t *testing.T) {
	w := &stubWriter{}
	p := NewKafkaPublisher(w, zap.NewNop())

	err := p.Publish(context.Background(), SaleCompleted, "sale-1", map[string]string{"invoice_no": "INV-1"})
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "sale-1", string(w.msgs[0].Key))
	assert.JSONEq(t, `{"invoice_no":"INV-1"}`, string(w.msgs[0].Value))
	assert.Equal(t, "event_type", w.msgs[0].Headers[0].Key)
	assert.Equal(t, SaleCompleted, string(w.msgs[0].Headers[0].Value))
}

func TestKafkaPublisherTripsBreaker(t *testing.T) {
	w := &stubWriter{err: errors.New("broker down")}
	p := NewKafkaPublisher(w, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := p.Publish(ctx, SaleCompleted, "k", "v")
		require.Error(t, err)
		assert.False(t, IsUnavailable(err))
	}

	assert.Equal(t, "open", p.State())
	err := p.Publish(ctx, SaleCompleted, "k", "v")
	assert.True(t, IsUnavailable(err))
}

func TestMemoryPublisher(t *testing.T) {
	p := NewMemoryPublisher()
	require.NoError(t, p.Publish(context.Background(), SaleCompleted, "a", 1))

	events := p.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "1", string(events[0].Payload))
	assert.Equal(t, "closed", p.State())
}
