package main

import (
	"context"
	"testing"

	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	submitErr error
	selected  models.SelectedModule
}

func (f *fakeSessions) NewSession() string { return "sid-1" }

func (f *fakeSessions) SubmitCredential(context.Context, string, string, string) (models.Credential, error) {
	return models.Credential{}, f.submitErr
}

func (f *fakeSessions) SelectModule(_ context.Context, _, moduleID, _ string) (models.SelectedModule, error) {
	f.selected = models.SelectedModule{Module: models.ModuleDescriptor{ID: moduleID}}
	return f.selected, nil
}

type fakeAnalyzer struct {
	gotSymbol string
	gotModule string
}

func (f *fakeAnalyzer) AnalyzeSelected(_ context.Context, symbol string, sel models.SelectedModule, obs models.ProgressObserver) (models.AnalysisResult, error) {
	f.gotSymbol = symbol
	f.gotModule = sel.Module.ID
	for _, s := range models.Stages {
		obs.OnProgress(s.Event())
	}
	return models.AnalysisResult{Summary: "ok"}, nil
}

func TestRunPassesSelectionToAnalyzer(t *testing.T) {
	s := &fakeSessions{}
	a := &fakeAnalyzer{}

	err := run(context.Background(), s, a, "AAPL", "sk-test", "gpt-4-turbo-preview", "")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", a.gotSymbol)
	assert.Equal(t, "gpt-4-turbo-preview", a.gotModule)
}

func TestRunStopsOnCredentialFailure(t *testing.T) {
	s := &fakeSessions{submitErr: failure.Newf(failure.InvalidInput, failure.MsgBadKeyFormat)}
	a := &fakeAnalyzer{}

	err := run(context.Background(), s, a, "AAPL", "bad", "gpt-4-turbo-preview", "")
	require.Error(t, err)
	assert.Empty(t, a.gotSymbol)
}

func TestDescribe(t *testing.T) {
	quota := failure.WithStage(failure.Newf(failure.QuotaExceeded, failure.MsgQuotaExceeded), "aiAnalysis")
	assert.Equal(t, "aiAnalysis: "+failure.MsgQuotaExceeded+" (-admin-code)", describe(quota))
	assert.Equal(t, failure.MsgBadKeyFormat, describe(failure.Newf(failure.InvalidInput, failure.MsgBadKeyFormat)))
}
