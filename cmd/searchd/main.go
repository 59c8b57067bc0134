package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jurisgo/lexsearch/internal/analytics"
	"github.com/jurisgo/lexsearch/internal/cache"
	"github.com/jurisgo/lexsearch/internal/corpus"
	"github.com/jurisgo/lexsearch/internal/index"
	"github.com/jurisgo/lexsearch/internal/query"
	"github.com/jurisgo/lexsearch/internal/ranking"
	"github.com/jurisgo/lexsearch/internal/server"
	"github.com/jurisgo/lexsearch/internal/synonym"
	"github.com/jurisgo/lexsearch/pkg/config"
	"github.com/jurisgo/lexsearch/pkg/health"
	"github.com/jurisgo/lexsearch/pkg/kafka"
	"github.com/jurisgo/lexsearch/pkg/logger"
	"github.com/jurisgo/lexsearch/pkg/metrics"
	"github.com/jurisgo/lexsearch/pkg/middleware"
	"github.com/jurisgo/lexsearch/pkg/postgres"
	pkgredis "github.com/jurisgo/lexsearch/pkg/redis"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting legal search service", "version", server.Version, "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer shutdownMetrics(context.Background())
	}

	store, err := loadCorpus(ctx, cfg)
	if err != nil {
		slog.Error("failed to load corpus, search endpoints will answer 503", "error", err)
	}

	var svc *query.Service
	var idx *index.Index
	if store != nil {
		idx = index.Build(store)
		table := loadSynonyms(cfg)
		if cfg.Search.Strategy != "" && cfg.Search.Strategy != "lexical" {
			slog.Warn("unknown ranking strategy, falling back to lexical", "strategy", cfg.Search.Strategy)
		}
		strategy := ranking.NewLexical(idx, store)
		svc, err = query.New(store, idx, table, strategy, cfg.Search.MaxResults)
		if err != nil {
			slog.Error("failed to build query service", "error", err)
			svc = nil
		}
	}
	if m != nil && store != nil {
		m.CorpusChunks.Set(float64(store.Len()))
		m.CorpusSources.Set(float64(len(store.Sources())))
		m.IndexTerms.Set(float64(idx.Terms()))
	}

	var queryCache *cache.QueryCache
	var redisClient *pkgredis.Client
	redisClient, err = pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, search caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		queryCache = cache.New(redisClient, cfg.Redis)
		slog.Info("search cache enabled",
			"addr", cfg.Redis.Addr,
			"ttl", cfg.Redis.CacheTTL,
		)
	}

	var collector *analytics.Collector
	var analyticsH *analytics.Handler
	if cfg.Analytics.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents)
		defer producer.Close()
		collector = analytics.NewCollector(producer, cfg.Analytics.BufferSize)
		collector.Start(ctx)
		defer collector.Close()

		var aggregator *analytics.Aggregator
		consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents,
			func(ctx context.Context, key, value []byte) error {
				return analytics.HandleEvent(aggregator)(ctx, key, value)
			})
		aggregator = analytics.NewAggregator(consumer)
		analyticsH = analytics.NewHandler(aggregator)
		go func() {
			if err := aggregator.Start(ctx); err != nil {
				slog.Error("analytics aggregator error", "error", err)
			}
		}()
		slog.Info("search analytics enabled", "topic", cfg.Kafka.Topics.SearchEvents)
	}

	checker := health.NewChecker()
	checker.Register("corpus", func(ctx context.Context) health.ComponentHealth {
		if svc == nil {
			return health.ComponentHealth{Status: health.StatusDown, Message: "corpus not loaded"}
		}
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d chunks indexed", store.Len()),
		}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	h := server.New(svc, queryCache, collector, m, cfg.Search.DefaultLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("POST /search", h.Search)
	mux.HandleFunc("POST /search-by-book", h.SearchByBook)
	mux.HandleFunc("GET /stats", h.Stats)
	mux.HandleFunc("GET /sources", h.Sources)
	mux.HandleFunc("GET /cache/stats", h.CacheStats)
	mux.HandleFunc("POST /cache/invalidate", h.CacheInvalidate)
	if analyticsH != nil {
		mux.HandleFunc("GET /analytics", analyticsH.Stats)
	}
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.RequestID(chain)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("legal search service listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("legal search service stopped")
}

// loadCorpus builds the immutable corpus snapshot from the configured backend.
func loadCorpus(ctx context.Context, cfg *config.Config) (*corpus.Store, error) {
	switch cfg.Corpus.Backend {
	case "postgres":
		client, err := postgres.New(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		defer client.Close()
		return corpus.LoadPostgres(ctx, client, cfg.Corpus)
	default:
		return corpus.LoadFile(cfg.Corpus.Path)
	}
}

// loadSynonyms merges the built-in legal synonym table with the optional
// user-provided YAML file. A broken file is logged and skipped rather than
// failing startup.
func loadSynonyms(cfg *config.Config) *synonym.Table {
	entries := []map[string][]string{synonym.Default()}
	if cfg.Synonyms.Path != "" {
		extra, err := synonym.LoadFile(cfg.Synonyms.Path)
		if err != nil {
			slog.Warn("failed to load synonym file, using built-in table only",
				"path", cfg.Synonyms.Path, "error", err)
		} else {
			entries = append(entries, extra)
		}
	}
	table := synonym.NewTable(entries...)
	slog.Info("synonym table loaded", "entries", table.Size())
	return table
}
