package repository

import (
	"context"

	"StockLens/internal/domain/models"
)

// NopMetrics discards all observations.
type NopMetrics struct{}

func (NopMetrics) RecordCacheHit(string) {}
func (NopMetrics) RecordCacheMiss(string) {}
func (NopMetrics) RecordLocalThrottle(string) {}
func (NopMetrics) RecordProviderError(string, string) {}
func (NopMetrics) RecordStage(string, float64) {}
func (NopMetrics) RecordAnalysis(string) {}

// NopPublisher drops events; used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishAnalysis(context.Context, models.AnalysisCompleted) error { return nil }
func (NopPublisher) Close() error { return nil }
