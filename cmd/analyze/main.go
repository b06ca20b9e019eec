package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"StockLens/internal/di"
	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"
	"StockLens/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	symbol := flag.String("symbol", "", "ticker symbol to analyze")
	apiKey := flag.String("key", os.Getenv("OPENAI_API_KEY"), "AI provider secret (sk-...)")
	moduleID := flag.String("module", "gpt-4-turbo-preview", "AI module id")
	adminCode := flag.String("admin-code", "", "admin override code")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	cfg.Metrics.Enabled = false

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, app.Sessions, app.Orchestrator, *symbol, *apiKey, *moduleID, *adminCode)
	stop()
	_ = app.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

type sessions interface {
	NewSession() string
	SubmitCredential(ctx context.Context, sid, apiKey, adminCode string) (models.Credential, error)
	SelectModule(ctx context.Context, sid, moduleID, adminCode string) (models.SelectedModule, error)
}

type analyzer interface {
	AnalyzeSelected(ctx context.Context, symbol string, sel models.SelectedModule, obs models.ProgressObserver) (models.AnalysisResult, error)
}

func run(ctx context.Context, s sessions, a analyzer, symbol, apiKey, moduleID, adminCode string) error {
	sid := s.NewSession()
	if _, err := s.SubmitCredential(ctx, sid, apiKey, adminCode); err != nil {
		return err
	}
	sel, err := s.SelectModule(ctx, sid, moduleID, adminCode)
	if err != nil {
		return err
	}

	res, err := a.AnalyzeSelected(ctx, symbol, sel, models.ProgressFunc(func(ev models.ProgressEvent) {
		fmt.Printf("[%3d%%] %s\n", ev.Percent, ev.Label)
	}))
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(res.Summary)
	return nil
}

func describe(err error) string {
	var fe *failure.Error
	if !errors.As(err, &fe) {
		return err.Error()
	}
	msg := fe.Message
	if fe.Stage != "" {
		msg = fe.Stage + ": " + msg
	}
	if fe.Kind == failure.QuotaExceeded {
		msg += " (-admin-code)"
	}
	return msg
}
