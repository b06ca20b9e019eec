package usecase

import (
	"context"
	"strings"

	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	"StockLens/pkg/clock"
	applogger "StockLens/pkg/logger"
)

// QuoteSource is the cached, throttled quote lookup the pipeline consumes.
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (models.Quote, error)
}

// ModuleCatalog resolves module identifiers.
type ModuleCatalog interface {
	Lookup(id string) (models.ModuleDescriptor, bool)
}

// OrchestratorConfig tunes the completion request.
type OrchestratorConfig struct {
	Temperature float64
	MaxTokens   int
}

// Orchestrator runs the five-stage analysis pipeline. Stages run strictly in
// order and none is retried.
type Orchestrator struct {
	quotes    QuoteSource
	modules   ModuleCatalog
	ai        drepo.AIProvider
	cfg       OrchestratorConfig
	publisher drepo.AnalysisPublisher
	metrics   drepo.Metrics
	clock     clock.Clock
	log       *applogger.Logger
}

// OrchestratorOption configures Orchestrator.
type OrchestratorOption func(*Orchestrator)

func WithPublisher(p drepo.AnalysisPublisher) OrchestratorOption {
	return func(o *Orchestrator) { o.publisher = p }
}

func WithOrchestratorMetrics(m drepo.Metrics) OrchestratorOption {
	return func(o *Orchestrator) { o.metrics = m }
}

func WithOrchestratorClock(c clock.Clock) OrchestratorOption {
	return func(o *Orchestrator) { o.clock = c }
}

func WithOrchestratorLogger(l *applogger.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.log = l }
}

func NewOrchestrator(quotes QuoteSource, modules ModuleCatalog, ai drepo.AIProvider, cfg OrchestratorConfig, opts ...OrchestratorOption) *Orchestrator {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	o := &Orchestrator{
		quotes:    quotes,
		modules:   modules,
		ai:        ai,
		cfg:       cfg,
		publisher: drepo.NopPublisher{},
		metrics:   drepo.NopMetrics{},
		clock:     clock.Real{},
		log:       applogger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Analyze resolves moduleID and runs the pipeline for symbol. An expired
// credential is treated as missing.
func (o *Orchestrator) Analyze(ctx context.Context, symbol string, cred models.Credential, moduleID string, obs models.ProgressObserver) (models.AnalysisResult, error) {
	if strings.TrimSpace(moduleID) == "" {
		return models.AnalysisResult{}, o.reject(failure.Newf(failure.InvalidInput, failure.MsgSelectModule))
	}
	m, ok := o.modules.Lookup(moduleID)
	if !ok {
		return models.AnalysisResult{}, o.reject(failure.Newf(failure.InvalidInput, failure.MsgUnknownModule))
	}
	return o.AnalyzeSelected(ctx, symbol, models.Merge(m, cred, false), obs)
}

// AnalyzeSelected runs the pipeline for an already merged selection.
func (o *Orchestrator) AnalyzeSelected(ctx context.Context, symbol string, sel models.SelectedModule, obs models.ProgressObserver) (models.AnalysisResult, error) {
	if obs == nil {
		obs = models.NopProgress{}
	}
	symbol = models.NormalizeSymbol(symbol)
	if err := o.checkInput(symbol, sel); err != nil {
		return models.AnalysisResult{}, o.reject(err)
	}

	log := o.log.With(applogger.String("symbol", symbol), applogger.String("module", sel.Module.ID))

	// initializing
	obs.OnProgress(models.StageInitializing.Event())

	// marketData
	start := o.clock.Now()
	quote, err := o.quotes.GetQuote(ctx, symbol)
	o.metrics.RecordStage(models.StageMarketData.Name, o.clock.Now().Sub(start).Seconds())
	if err != nil {
		return models.AnalysisResult{}, o.fail(log, err, models.StageMarketData)
	}
	obs.OnProgress(models.StageMarketData.Event())

	// aiAnalysis
	temp := o.cfg.Temperature
	req := drepo.CompletionRequest{
		Model:       sel.Module.ID,
		Messages:    []drepo.ChatMessage{{Role: "user", Content: BuildPrompt(quote)}},
		Temperature: &temp,
		MaxTokens:   o.tokenCeiling(sel.Module),
		JSONOutput:  true,
	}
	obs.OnProgress(models.StageAIAnalysis.Event())

	start = o.clock.Now()
	resp, err := o.ai.Complete(ctx, sel.Credential.Secret, req)
	o.metrics.RecordStage(models.StageAIAnalysis.Name, o.clock.Now().Sub(start).Seconds())
	if err != nil {
		return models.AnalysisResult{}, o.fail(log, err, models.StageAIAnalysis)
	}
	obs.OnProgress(models.StageProcessing.Event())

	// processing
	if len(resp.Choices) == 0 {
		return models.AnalysisResult{}, o.fail(log, failure.New(failure.MalformedAnalysis), models.StageProcessing)
	}
	analysis, err := ParseAnalysis(quote, resp.Choices[0])
	if err != nil {
		return models.AnalysisResult{}, o.fail(log, err, models.StageProcessing)
	}

	// done
	serialized, err := SerializeAnalysis(analysis)
	if err != nil {
		return models.AnalysisResult{}, o.fail(log, failure.Wrap(failure.MalformedAnalysis, err), models.StageDone)
	}
	result := models.AnalysisResult{
		Summary:           RenderSummary(analysis),
		Analysis:          analysis,
		SerializedContext: serialized,
	}
	obs.OnProgress(models.StageDone.Event())

	o.metrics.RecordAnalysis("ok")
	log.Info("analysis completed", applogger.Float64("price", quote.Price))
	o.publish(ctx, log, sel.Module.ID, result)
	return result, nil
}

func (o *Orchestrator) checkInput(symbol string, sel models.SelectedModule) *failure.Error {
	switch {
	case symbol == "":
		return failure.New(failure.InvalidInput)
	case strings.TrimSpace(sel.Credential.Secret) == "":
		return failure.Newf(failure.InvalidInput, failure.MsgMissingKey)
	case !sel.Credential.ExpiresAt.IsZero() && !o.clock.Now().Before(sel.Credential.ExpiresAt):
		return failure.Newf(failure.InvalidInput, failure.MsgKeyExpired)
	case sel.Module.ID == "":
		return failure.Newf(failure.InvalidInput, failure.MsgSelectModule)
	}
	return nil
}

// tokenCeiling caps the configured completion budget by the module's own limit.
func (o *Orchestrator) tokenCeiling(m models.ModuleDescriptor) int {
	if m.MaxTokens > 0 && m.MaxTokens < o.cfg.MaxTokens {
		return m.MaxTokens
	}
	return o.cfg.MaxTokens
}

func (o *Orchestrator) reject(err *failure.Error) error {
	cp := *err
	cp.Stage = models.StageInitializing.Name
	o.metrics.RecordAnalysis(string(cp.Kind))
	return &cp
}

func (o *Orchestrator) fail(log *applogger.Logger, err error, stage models.Stage) error {
	fe := failure.WithStage(err, stage.Name)
	o.metrics.RecordAnalysis(string(fe.Kind))
	log.Warn("analysis failed",
		applogger.String("stage", stage.Name),
		applogger.String("kind", string(fe.Kind)),
		applogger.Error(err),
	)
	return fe
}

func (o *Orchestrator) publish(ctx context.Context, log *applogger.Logger, moduleID string, res models.AnalysisResult) {
	ev := models.AnalysisCompleted{
		Symbol:      res.Analysis.Symbol,
		ModuleID:    moduleID,
		Summary:     res.Summary,
		Analysis:    res.Analysis,
		CompletedAt: o.clock.Now().UnixMilli(),
	}
	if err := o.publisher.PublishAnalysis(ctx, ev); err != nil {
		log.Warn("publish analysis failed", applogger.Error(err))
	}
}
