package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"stormfeed/internal/config"
	"stormfeed/internal/infra/fetcher"
	"stormfeed/internal/infra/scraper"
	workerPkg "stormfeed/internal/infra/worker"
	"stormfeed/internal/observability/logging"
	crawlUC "stormfeed/internal/usecase/crawl"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	crawlerCfg, err := config.LoadCrawlerConfig()
	if err != nil {
		logger.Error("failed to load crawler configuration", slog.Any("error", err))
		os.Exit(1)
	}

	sources, err := config.LoadSources(crawlerCfg.SourcesPath)
	if err != nil {
		logger.Error("failed to load source registry", slog.Any("error", err))
		os.Exit(1)
	}

	workerCfg, err := workerPkg.LoadConfig()
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerCfg.CronSchedule),
		slog.String("timezone", workerCfg.Timezone),
		slog.Duration("crawl_timeout", workerCfg.CrawlTimeout),
		slog.String("snapshot_dir", workerCfg.SnapshotDir),
		slog.Int("health_port", workerCfg.HealthPort))

	aggregator := crawlUC.NewAggregator(
		sources,
		fetcher.NewFeedFetcher(crawlerCfg.UserAgent, crawlerCfg.FetchTimeout, logger),
		scraper.NewFeedParser(crawlerCfg.MaxEntriesPerFeed, crawlerCfg.SummaryBudget),
		scraper.NewSearchScraper(logger),
		crawlUC.NewClassifier(),
		crawlUC.NewRecencyFilter(crawlerCfg.GeneralWindow, crawlerCfg.RedCrossWindow),
		crawlerCfg.Concurrency,
		logger,
	)

	store := workerPkg.NewSnapshotStore(workerCfg.SnapshotDir, workerCfg.SnapshotKeep, logger)

	healthAddr := fmt.Sprintf(":%d", workerCfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	startCronWorker(ctx, logger, aggregator, store, workerCfg, healthServer)
}

// startCronWorker starts the scheduler, runs one snapshot immediately so
// latest.json exists before the first tick, and blocks until shutdown.
func startCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	aggregator *crawlUC.Aggregator,
	store *workerPkg.SnapshotStore,
	cfg *workerPkg.Config,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC",
			slog.String("timezone", cfg.Timezone),
			slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runSnapshotJob(ctx, logger, aggregator, store, cfg)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	runSnapshotJob(ctx, logger, aggregator, store, cfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	cronCtx := c.Stop()
	<-cronCtx.Done()
	logger.Info("worker stopped")
}

// runSnapshotJob executes one aggregation run and persists the snapshot.
func runSnapshotJob(
	ctx context.Context,
	logger *slog.Logger,
	aggregator *crawlUC.Aggregator,
	store *workerPkg.SnapshotStore,
	cfg *workerPkg.Config,
) {
	startTime := time.Now()
	logger.Info("snapshot run started")

	runCtx, cancel := context.WithTimeout(ctx, cfg.CrawlTimeout)
	defer cancel()

	result, err := aggregator.Run(runCtx)
	if err != nil {
		logger.Error("snapshot run failed", slog.Any("error", err))
		workerPkg.RecordRun("failure", time.Since(startTime))
		return
	}

	if err := store.Write(result); err != nil {
		logger.Error("snapshot write failed", slog.Any("error", err))
		workerPkg.RecordRun("failure", time.Since(startTime))
		return
	}

	workerPkg.RecordRun("success", time.Since(startTime))
	workerPkg.RecordSuccess(result.Metadata.TotalArticles)

	logger.Info("snapshot run completed",
		slog.Int("articles", result.Metadata.TotalArticles),
		slog.Int("crawled", result.Metadata.TotalCrawled),
		slog.Duration("duration", time.Since(startTime)))
}
