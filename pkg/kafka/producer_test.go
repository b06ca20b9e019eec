package kafka_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	xkafka "StockLens/pkg/kafka"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := xkafka.NewProducer()
	require.Error(t, err)
}

func TestPublishEncodesJSON(t *testing.T) {
	w := &recordingWriter{}
	p, err := xkafka.NewProducer(xkafka.WithWriter(w))
	require.NoError(t, err)

	err = p.Publish(t.Context(), "analysis.completed", []byte("AAPL"), map[string]any{"symbol": "AAPL"})

	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "analysis.completed", w.msgs[0].Topic)
	assert.Equal(t, []byte("AAPL"), w.msgs[0].Key)
	assert.JSONEq(t, `{"symbol":"AAPL"}`, string(w.msgs[0].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishPassesRawBytes(t *testing.T) {
	w := &recordingWriter{}
	p, err := xkafka.NewProducer(xkafka.WithWriter(w))
	require.NoError(t, err)

	require.NoError(t, p.Publish(t.Context(), "t", nil, "plain"))
	require.NoError(t, p.Publish(t.Context(), "t", nil, []byte{0x1}))

	assert.Equal(t, []byte("plain"), w.msgs[0].Value)
	assert.Equal(t, []byte{0x1}, w.msgs[1].Value)
}

func TestPublishWrapsWriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	p, err := xkafka.NewProducer(xkafka.WithWriter(w))
	require.NoError(t, err)

	err = p.Publish(t.Context(), "analysis.completed", nil, "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.completed")
	assert.Contains(t, err.Error(), "leader not available")
}
