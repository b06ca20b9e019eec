package usecase

import (
	"context"

	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	applogger "StockLens/pkg/logger"
)

// DefaultModules is the fixed catalog loaded at start-up.
func DefaultModules() []models.ModuleDescriptor {
	return []models.ModuleDescriptor{
		{
			ID:          "gpt-4-turbo-preview",
			Name:        "GPT-4 Turbo",
			Description: "המודל המתקדם ביותר של OpenAI",
			Type:        "language",
			Capabilities: []string{
				models.CapMarketAnalysis,
				models.CapSentimentAnalysis,
				models.CapTechnicalAnalysis,
			},
			MaxTokens: 4096,
		},
		{
			ID:          "gpt-4-1106-preview",
			Name:        "GPT-4 Preview",
			Description: "גרסת בטא עם יכולות מתקדמות",
			Type:        "language",
			Capabilities: []string{
				models.CapMarketAnalysis,
				models.CapSentimentAnalysis,
			},
			MaxTokens:    4096,
			Experimental: true,
		},
	}
}

const probePrompt = "Test connection"

// Registry holds the immutable module catalog and validates selections
// against the AI provider.
type Registry struct {
	modules []models.ModuleDescriptor
	byID    map[string]int
	ai      drepo.AIProvider
	log     *applogger.Logger
}

// NewRegistry builds a registry over catalog. A nil catalog uses DefaultModules.
func NewRegistry(ai drepo.AIProvider, catalog []models.ModuleDescriptor, log *applogger.Logger) *Registry {
	if catalog == nil {
		catalog = DefaultModules()
	}
	if log == nil {
		log = applogger.Nop()
	}
	r := &Registry{
		modules: make([]models.ModuleDescriptor, len(catalog)),
		byID:    make(map[string]int, len(catalog)),
		ai:      ai,
		log:     log,
	}
	for i, m := range catalog {
		m.Capabilities = append([]string(nil), m.Capabilities...)
		r.modules[i] = m
		r.byID[m.ID] = i
	}
	return r
}

// List returns a copy of the catalog in declaration order.
func (r *Registry) List() []models.ModuleDescriptor {
	out := make([]models.ModuleDescriptor, len(r.modules))
	for i, m := range r.modules {
		m.Capabilities = append([]string(nil), m.Capabilities...)
		out[i] = m
	}
	return out
}

// Lookup finds a module by identifier.
func (r *Registry) Lookup(id string) (models.ModuleDescriptor, bool) {
	i, ok := r.byID[id]
	if !ok {
		return models.ModuleDescriptor{}, false
	}
	m := r.modules[i]
	m.Capabilities = append([]string(nil), m.Capabilities...)
	return m, true
}

// Validate checks that the selection can reach its model. Unlimited
// selections pass without a provider call. A quota failure is returned as an
// error; every other provider failure is reported as false.
func (r *Registry) Validate(ctx context.Context, sel models.SelectedModule) (bool, error) {
	if sel.UnlimitedAccess {
		return true, nil
	}

	resp, err := r.ai.Complete(ctx, sel.Credential.Secret, drepo.CompletionRequest{
		Model:     sel.Module.ID,
		Messages:  []drepo.ChatMessage{{Role: "user", Content: probePrompt}},
		MaxTokens: 1,
	})
	if err != nil {
		if failure.IsQuota(err) {
			return false, err
		}
		r.log.Info("module validation failed",
			applogger.String("module", sel.Module.ID),
			applogger.String("kind", string(failure.KindOf(err))),
		)
		return false, nil
	}
	return len(resp.Choices) > 0, nil
}
