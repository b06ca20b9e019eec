package repository_test

import (
	"context"
	"testing"

	"StockLens/internal/domain/models"
	"StockLens/internal/repository"
	xkafka "StockLens/pkg/kafka"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	msgs []kafka.Message
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestPublishAnalysisKeysBySymbol(t *testing.T) {
	w := &captureWriter{}
	producer, err := xkafka.NewProducer(xkafka.WithWriter(w))
	require.NoError(t, err)
	pub := repository.NewKafkaAnalysisPublisher(producer, "analysis.completed")
	defer pub.Close()

	ev := models.AnalysisCompleted{
		Symbol:      "AAPL",
		ModuleID:    "gpt-4-turbo-preview",
		Summary:     "ניתוח מניית AAPL:",
		Analysis:    models.MarketAnalysis{Symbol: "AAPL", CurrentPrice: 150},
		CompletedAt: 1760452200000,
	}

	require.NoError(t, pub.PublishAnalysis(t.Context(), ev))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "analysis.completed", w.msgs[0].Topic)
	assert.Equal(t, "AAPL", string(w.msgs[0].Key))

	var got models.AnalysisCompleted
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, ev, got)
}
