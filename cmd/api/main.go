package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stormfeed/internal/config"
	"stormfeed/internal/domain/entity"
	"stormfeed/internal/infra/fetcher"
	"stormfeed/internal/infra/scraper"
	"stormfeed/internal/infra/summarizer"
	"stormfeed/internal/observability/logging"
	"stormfeed/internal/usecase/briefing"
	crawlUC "stormfeed/internal/usecase/crawl"
	pkgconfig "stormfeed/pkg/config"

	hhttp "stormfeed/internal/handler/http"
	hcrawl "stormfeed/internal/handler/http/crawl"
	"stormfeed/internal/handler/http/middleware"
	"stormfeed/internal/handler/http/requestid"
	hsummary "stormfeed/internal/handler/http/summary"
	"stormfeed/internal/observability/tracing"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	crawlerCfg := loadCrawlerConfig(logger)
	sources := loadSources(logger, crawlerCfg.SourcesPath)

	version := getVersion()
	handler := setupServer(logger, crawlerCfg, sources, version)

	runServer(logger, handler, version)
}

// loadCrawlerConfig loads the pipeline configuration or exits.
func loadCrawlerConfig(logger *slog.Logger) *config.CrawlerConfig {
	cfg, err := config.LoadCrawlerConfig()
	if err != nil {
		logger.Error("failed to load crawler configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// loadSources loads the source registry or exits.
func loadSources(logger *slog.Logger, path string) []entity.SourceDescriptor {
	sources, err := config.LoadSources(path)
	if err != nil {
		logger.Error("failed to load source registry", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("source registry loaded",
		slog.Int("sources", len(sources)),
		slog.String("path", path))
	return sources
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires the pipeline, handlers, and middleware chain.
func setupServer(logger *slog.Logger, crawlerCfg *config.CrawlerConfig, sources []entity.SourceDescriptor, version string) http.Handler {
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

	backend := summarizer.NewFromEnv(logger)
	backendName := "fallback"
	if backend != nil {
		backendName = backend.Name()
	}

	var contentFetcher briefing.ContentFetcher
	contentCfg, err := fetcher.LoadContentFetchConfig()
	if err != nil {
		logger.Error("failed to load content fetch configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if contentCfg.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(contentCfg)
	}

	briefingSvc := briefing.NewService(
		backend,
		contentFetcher,
		contentCfg.Threshold,
		crawlerCfg.SummaryBudget,
		contentCfg.Parallelism,
		logger,
	)

	mux := http.NewServeMux()
	hcrawl.Register(mux, aggregator, logger)
	hsummary.Register(mux, briefingSvc, logger)

	mux.Handle("/health", &hhttp.HealthHandler{
		Version:         version,
		SourceCount:     len(sources),
		BriefingBackend: backendName,
	})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	return applyMiddleware(logger, mux, crawlerCfg.CrawlTimeout)
}

// applyMiddleware wraps the mux with the middleware chain, innermost first:
// CORS and request ID run outermost so preflights exit early and every log
// line carries an ID; the request timeout sits just above the handlers so
// a hung crawl cannot pin a connection forever.
func applyMiddleware(logger *slog.Logger, handler http.Handler, crawlTimeout time.Duration) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(
		pkgconfig.GetEnvInt("RATE_LIMIT_REQUESTS", 60),
		pkgconfig.GetEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	)

	chain := handler
	chain = hhttp.Timeout(crawlTimeout)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(middleware.DefaultCORSConfig())(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := pkgconfig.GetEnvString("LISTEN_ADDR", ":8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
