// Package main is the entry point for the DecentralFund analytics service.
// It wires the portfolio optimizer, insight generator, sentiment analyzer,
// governance predictor and report builder behind an HTTP API, backed by a
// TTL price cache with a SQLite history fallback.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suyash242004/decentralfund-dao/internal/clients/yahoo"
	"github.com/suyash242004/decentralfund-dao/internal/config"
	"github.com/suyash242004/decentralfund-dao/internal/modules/governance"
	"github.com/suyash242004/decentralfund-dao/internal/modules/historical"
	"github.com/suyash242004/decentralfund-dao/internal/modules/insights"
	"github.com/suyash242004/decentralfund-dao/internal/modules/optimization"
	"github.com/suyash242004/decentralfund-dao/internal/modules/prices"
	"github.com/suyash242004/decentralfund-dao/internal/modules/rebalancing"
	"github.com/suyash242004/decentralfund-dao/internal/modules/reports"
	"github.com/suyash242004/decentralfund-dao/internal/modules/scoring"
	"github.com/suyash242004/decentralfund-dao/internal/modules/sentiment"
	"github.com/suyash242004/decentralfund-dao/internal/scheduler"
	"github.com/suyash242004/decentralfund-dao/internal/server"
	"github.com/suyash242004/decentralfund-dao/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting DecentralFund analytics service")

	// Price history database. The cache falls back to it when the provider
	// is unreachable, so losing it only costs us the fallback tier.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", cfg.DataDir).Msg("Failed to create data directory")
	}
	historyStore, err := historical.Open(cfg.HistoryDBPath(), log)
	if err != nil {
		log.Warn().Err(err).Msg("History database unavailable, running without price fallback")
		historyStore = nil
	} else {
		defer historyStore.Close()
	}

	provider := yahoo.NewClient(log)
	var history prices.HistoryStore
	if historyStore != nil {
		history = historyStore
	}
	priceCache := prices.New(provider, history, cfg.PriceCacheTTL, log)

	planner := rebalancing.NewPlanner(cfg.RebalanceThreshold, log)
	scorer := scoring.NewConfidenceScorer(cfg.RiskFreeRate, cfg.RollingWindow, log)

	optimizationService := optimization.NewService(
		priceCache,
		optimization.NewMVBackend(cfg.RiskFreeRate),
		optimization.NewStaticBackend(),
		planner,
		scorer,
		cfg.RiskFreeRate,
		cfg.LookbackPeriods,
		log,
	)

	insightService := insights.NewService(priceCache, insights.NewGenerator(log), log)
	analyzer := sentiment.NewDefaultAnalyzer(log)
	predictor := governance.NewPredictor(analyzer, log)
	reportService := reports.NewService(priceCache, insightService, cfg.RiskFreeRate, log)

	srv := server.New(server.Config{
		Port:         cfg.Port,
		Log:          log,
		Optimization: optimizationService,
		Insights:     insightService,
		Sentiment:    analyzer,
		Governance:   predictor,
		Reports:      reportService,
		DevMode:      cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Keep the price cache warm so interactive calls skip the provider
	// round trip. A cold start warms immediately.
	sched := scheduler.New(log)
	warmer := scheduler.NewCacheWarmer(priceCache, nil, log)
	warmSchedule := fmt.Sprintf("@every %s", cfg.PriceCacheTTL)
	if err := sched.AddJob(warmSchedule, warmer); err != nil {
		log.Error().Err(err).Msg("Failed to register cache warmer")
	} else {
		go func() {
			if err := sched.RunNow(warmer); err != nil {
				log.Warn().Err(err).Msg("Initial cache warm failed")
			}
		}()
		sched.Start()
		defer sched.Stop()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
