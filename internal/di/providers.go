package di

import (
	"fmt"

	drepo "StockLens/internal/domain/repository"
	"StockLens/internal/handler/api"
	internalrepo "StockLens/internal/repository"
	"StockLens/internal/service/alphavantage"
	"StockLens/internal/service/cache"
	"StockLens/internal/service/openai"
	"StockLens/internal/usecase"
	"StockLens/pkg/clock"
	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	pkgkafka "StockLens/pkg/kafka"
	applogger "StockLens/pkg/logger"
	"StockLens/pkg/metrics"
	"StockLens/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideClock returns the wall clock.
func ProvideClock() clock.Clock {
	return clock.Real{}
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) drepo.Metrics {
	if !cfg.Metrics.Enabled {
		return drepo.NopMetrics{}
	}
	return metrics.New()
}

// ProvideQuoteProvider creates the Alpha Vantage client.
func ProvideQuoteProvider(cfg *config.Config, l *applogger.Logger) (drepo.QuoteProvider, error) {
	c, err := alphavantage.New(cfg.MarketData.APIKey,
		alphavantage.WithBaseURL(cfg.MarketData.BaseURL),
		alphavantage.WithTimeout(cfg.MarketData.Timeout),
		alphavantage.WithLogger(l.With(applogger.String("provider", "alphavantage"))),
	)
	if err != nil {
		return nil, fmt.Errorf("market data client: %w", err)
	}
	return c, nil
}

// ProvideAIProvider creates the OpenAI client.
func ProvideAIProvider(cfg *config.Config, l *applogger.Logger) drepo.AIProvider {
	return openai.New(
		openai.WithBaseURL(cfg.AI.BaseURL),
		openai.WithTimeout(cfg.AI.Timeout),
		openai.WithRetry(cfg.AI.MaxAttempts, cfg.AI.Backoff),
		openai.WithLogger(l.With(applogger.String("provider", "openai"))),
	)
}

// ProvideSessionStore creates the in-memory TTL store backing sessions.
func ProvideSessionStore(c clock.Clock) drepo.SessionStore {
	return cache.NewTTLCache(c)
}

// ProvideGateway creates the cached, rate-limited market data gateway.
func ProvideGateway(cfg *config.Config, quotes drepo.QuoteProvider, ai drepo.AIProvider, m drepo.Metrics, c clock.Clock, l *applogger.Logger) *usecase.Gateway {
	return usecase.NewGateway(quotes, ai, usecase.GatewayConfig{
		CacheTTL:    cfg.MarketData.CacheTTL,
		RateWindow:  cfg.MarketData.RateWindow,
		RateCeiling: cfg.MarketData.RateCeiling,
	},
		usecase.WithGatewayClock(c),
		usecase.WithGatewayMetrics(m),
		usecase.WithGatewayLogger(l),
	)
}

// ProvideRegistry creates the module registry over the built-in catalog.
func ProvideRegistry(ai drepo.AIProvider, l *applogger.Logger) *usecase.Registry {
	return usecase.NewRegistry(ai, usecase.DefaultModules(), l)
}

// ProvideKafkaProducer creates a Kafka producer when events are enabled.
// It returns nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Events.WriteTimeout),
		pkgkafka.WithAsync(cfg.Events.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAnalysisPublisher picks the Kafka publisher or a no-op one.
func ProvideAnalysisPublisher(cfg *config.Config, producer *pkgkafka.Producer) drepo.AnalysisPublisher {
	if producer == nil {
		return drepo.NopPublisher{}
	}
	return internalrepo.NewKafkaAnalysisPublisher(producer, cfg.Events.Topic)
}

// ProvideOrchestrator creates the analysis pipeline.
func ProvideOrchestrator(cfg *config.Config, gw *usecase.Gateway, reg *usecase.Registry, ai drepo.AIProvider, pub drepo.AnalysisPublisher, m drepo.Metrics, c clock.Clock, l *applogger.Logger) *usecase.Orchestrator {
	return usecase.NewOrchestrator(gw, reg, ai, usecase.OrchestratorConfig{
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	},
		usecase.WithPublisher(pub),
		usecase.WithOrchestratorMetrics(m),
		usecase.WithOrchestratorClock(c),
		usecase.WithOrchestratorLogger(l),
	)
}

// ProvideSessionManager creates the credential and module session layer.
func ProvideSessionManager(cfg *config.Config, store drepo.SessionStore, gw *usecase.Gateway, reg *usecase.Registry, c clock.Clock, l *applogger.Logger) *usecase.SessionManager {
	return usecase.NewSessionManager(store, gw, reg, usecase.SessionConfig{
		TTL:       cfg.Session.TTL,
		AdminCode: cfg.Session.AdminCode,
	}, c, l)
}

// ProvideHTTPHandler creates the echo route handler.
func ProvideHTTPHandler(l *applogger.Logger, sessions *usecase.SessionManager, reg *usecase.Registry, orch *usecase.Orchestrator) xhttp.Handler {
	return api.NewAnalysisEchoHandler(l, sessions, reg, orch)
}

// ProvideHTTPServer creates the HTTP server. It is not started here.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp assembles the application.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server, pub drepo.AnalysisPublisher, sessions *usecase.SessionManager, reg *usecase.Registry, orch *usecase.Orchestrator) *server.App {
	return server.New(cfg, l, srv, pub, sessions, reg, orch)
}
