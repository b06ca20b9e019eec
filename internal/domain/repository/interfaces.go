package repository

import (
	"context"
	"time"

	"StockLens/internal/domain/models"
)

// QuoteProvider is the raw, uncached and unthrottled market-data lookup.
//
//go:generate mockgen -package=usecase_test -destination=../../usecase/mock_repository_test.go -source=interfaces.go -exclude_interfaces=SessionStore,Metrics
type QuoteProvider interface {
	FetchQuote(ctx context.Context, symbol string) (models.Quote, error)
}

// ChatMessage is one entry of a completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a chat completion call.
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	Temperature *float64
	MaxTokens   int
	JSONOutput  bool
}

// CompletionResponse carries candidate completions in provider order.
type CompletionResponse struct {
	Choices []string
}

// AIProvider is the generative-AI backend. Errors it returns are already
// classified (see failure.Kind).
type AIProvider interface {
	ListModels(ctx context.Context, secret string) error
	Complete(ctx context.Context, secret string, req CompletionRequest) (CompletionResponse, error)
}

// SessionStore holds TTL-bound session values.
type SessionStore interface {
	Put(key string, value any, ttl time.Duration)
	Get(key string) (any, bool)
	Clear(key string)
}

// AnalysisPublisher emits completed analyses to downstream consumers.
type AnalysisPublisher interface {
	PublishAnalysis(ctx context.Context, ev models.AnalysisCompleted) error
	Close() error
}

// Metrics records core observability signals.
type Metrics interface {
	RecordCacheHit(symbol string)
	RecordCacheMiss(symbol string)
	RecordLocalThrottle(symbol string)
	RecordProviderError(provider, kind string)
	RecordStage(stage string, seconds float64)
	RecordAnalysis(result string)
}
