package usecase

import (
	"context"
	"strings"
	"time"

	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	"StockLens/internal/service/cache"
	"StockLens/internal/service/ratelimit"
	"StockLens/pkg/clock"
	applogger "StockLens/pkg/logger"
)

// GatewayConfig bounds the quote cache and the per-symbol request window.
type GatewayConfig struct {
	CacheTTL    time.Duration
	RateWindow  time.Duration
	RateCeiling int
}

// DefaultGatewayConfig returns 5 minute caching and 5 requests per minute
// per symbol.
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{CacheTTL: 5 * time.Minute, RateWindow: time.Minute, RateCeiling: 5}
}

// Gateway is the single owner of quote cache and rate-window state for the
// process. It decorates a raw QuoteProvider.
type Gateway struct {
	quotes  drepo.QuoteProvider
	ai      drepo.AIProvider
	cfg     GatewayConfig
	cache   *cache.TTLCache
	limiter *ratelimit.Limiter
	locks   *cache.KeyLock
	metrics drepo.Metrics
	log     *applogger.Logger
}

// GatewayOption configures Gateway.
type GatewayOption func(*gatewayOptions)

type gatewayOptions struct {
	clock   clock.Clock
	metrics drepo.Metrics
	log     *applogger.Logger
}

func WithGatewayClock(c clock.Clock) GatewayOption {
	return func(o *gatewayOptions) { o.clock = c }
}

func WithGatewayMetrics(m drepo.Metrics) GatewayOption {
	return func(o *gatewayOptions) { o.metrics = m }
}

func WithGatewayLogger(l *applogger.Logger) GatewayOption {
	return func(o *gatewayOptions) { o.log = l }
}

func NewGateway(quotes drepo.QuoteProvider, ai drepo.AIProvider, cfg GatewayConfig, opts ...GatewayOption) *Gateway {
	o := gatewayOptions{clock: clock.Real{}, metrics: drepo.NopMetrics{}, log: applogger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	def := DefaultGatewayConfig()
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = def.RateWindow
	}
	if cfg.RateCeiling <= 0 {
		cfg.RateCeiling = def.RateCeiling
	}
	return &Gateway{
		quotes:  quotes,
		ai:      ai,
		cfg:     cfg,
		cache:   cache.NewTTLCache(o.clock),
		limiter: ratelimit.New(cfg.RateWindow, cfg.RateCeiling, o.clock),
		locks:   cache.NewKeyLock(),
		metrics: o.metrics,
		log:     o.log,
	}
}

// ValidateCredential confirms secret against the AI provider's model listing.
// A false result always comes with a classified error: AuthenticationFailure,
// QuotaExceeded or TransportFailure.
func (g *Gateway) ValidateCredential(ctx context.Context, secret string) (bool, error) {
	if strings.TrimSpace(secret) == "" {
		return false, failure.Newf(failure.InvalidInput, failure.MsgMissingKey)
	}
	err := g.ai.ListModels(ctx, secret)
	if err == nil {
		return true, nil
	}

	kind := failure.KindOf(err)
	g.metrics.RecordProviderError("openai", string(kind))
	g.log.Warn("credential rejected",
		applogger.String("key", models.MaskSecret(secret)),
		applogger.String("kind", string(kind)),
	)
	switch kind {
	case failure.AuthenticationFailure, failure.QuotaExceeded:
		return false, err
	default:
		return false, &failure.Error{Kind: failure.TransportFailure, Message: failure.MsgCredentialValidate, Err: err}
	}
}

// FetchQuote is the uncached, unthrottled lookup.
func (g *Gateway) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return models.Quote{}, failure.New(failure.InvalidInput)
	}
	q, err := g.quotes.FetchQuote(ctx, symbol)
	if err != nil {
		g.metrics.RecordProviderError("alphavantage", string(failure.KindOf(err)))
		return models.Quote{}, failure.Wrap(failure.TransportFailure, err)
	}
	if q.Price <= 0 {
		return models.Quote{}, failure.Newf(failure.SymbolNotFound, failure.MsgNoUsablePrice)
	}
	if q.Volume < 0 {
		return models.Quote{}, failure.Newf(failure.SymbolNotFound, failure.MsgNoUsableVolume)
	}
	return q, nil
}

// GetQuote serves from cache when possible, otherwise spends one slot of the
// symbol's rate window on a provider call. The whole sequence runs under the
// symbol's lock so concurrent misses cannot both pass the ceiling.
func (g *Gateway) GetQuote(ctx context.Context, symbol string) (models.Quote, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return models.Quote{}, failure.New(failure.InvalidInput)
	}

	unlock := g.locks.Lock(symbol)
	defer unlock()

	if v, ok := g.cache.Get(symbol); ok {
		g.metrics.RecordCacheHit(symbol)
		return v.(models.Quote), nil
	}
	g.metrics.RecordCacheMiss(symbol)

	// the slot is spent even when the fetch fails
	if !g.limiter.Allow(symbol) {
		g.metrics.RecordLocalThrottle(symbol)
		g.log.Debug("quote throttled", applogger.String("symbol", symbol))
		return models.Quote{}, failure.New(failure.LocalRateLimited)
	}

	q, err := g.FetchQuote(ctx, symbol)
	if err != nil {
		return models.Quote{}, err
	}
	g.cache.Put(symbol, q, g.cfg.CacheTTL)
	return q, nil
}
