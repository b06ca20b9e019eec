package failure_test

import (
	"errors"
	"fmt"
	"testing"

	"StockLens/internal/domain/failure"

	"github.com/stretchr/testify/assert"
)

func TestIsQuotaMatchesThroughWrapping(t *testing.T) {
	quota := failure.Wrap(failure.QuotaExceeded, errors.New("insufficient_quota"))

	assert.True(t, failure.IsQuota(quota))
	assert.True(t, failure.IsQuota(fmt.Errorf("select module: %w", quota)))
	assert.True(t, failure.IsQuota(failure.WithStage(quota, "aiAnalysis")))
	assert.False(t, failure.IsQuota(failure.New(failure.AuthenticationFailure)))
	assert.False(t, failure.IsQuota(errors.New("plain")))
	assert.False(t, failure.IsQuota(nil))
}

func TestWrapKeepsExistingKind(t *testing.T) {
	inner := failure.New(failure.SymbolNotFound)

	got := failure.Wrap(failure.TransportFailure, fmt.Errorf("fetch: %w", inner))

	assert.Equal(t, failure.SymbolNotFound, got.Kind)
	assert.Equal(t, failure.TransportFailure, failure.KindOf(errors.New("plain")))
}
