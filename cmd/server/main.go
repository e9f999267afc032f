package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/newslens/newslens-backend/internal/ai"
	"github.com/newslens/newslens-backend/internal/analysis"
	"github.com/newslens/newslens-backend/internal/conf"
	"github.com/newslens/newslens-backend/internal/data"
	newsbiz "github.com/newslens/newslens-backend/internal/news/biz"
	newsservice "github.com/newslens/newslens-backend/internal/news/service"
	"github.com/newslens/newslens-backend/internal/pkg/cache"
	"github.com/newslens/newslens-backend/internal/pkg/logger"
	"github.com/newslens/newslens-backend/internal/pkg/workerpool"
	prefsbiz "github.com/newslens/newslens-backend/internal/prefs/biz"
	prefsdata "github.com/newslens/newslens-backend/internal/prefs/data"
	prefsservice "github.com/newslens/newslens-backend/internal/prefs/service"
	"github.com/newslens/newslens-backend/internal/search/provider"
	searchtypes "github.com/newslens/newslens-backend/internal/search/types"
	"github.com/newslens/newslens-backend/internal/server"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := logger.InitGlobal(logConfig); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	// Initialize data layer (database and redis are both optional)
	d, cleanup, err := data.NewData(config, log)
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	// Cache store
	var store cache.Store
	switch config.Cache.Backend {
	case "redis":
		if d.Redis == nil {
			log.Fatal("cache backend is redis but redis is disabled")
		}
		store = cache.NewRedisStore(d.Redis, "newslens:")
	default:
		memStore := cache.NewMemoryStore(config.Cache.MaxEntries)
		defer memStore.Close()
		store = memStore
	}

	// Search provider
	factory := provider.NewFactory()
	searcher, err := factory.Create(&searchtypes.ProviderConfig{
		ID:      searchtypes.ProviderID(config.Search.Provider),
		APIHost: config.Search.APIHost,
		APIKey:  config.Search.APIKey,
		Timeout: config.Search.Timeout,
	})
	if err != nil {
		log.Fatal("failed to create search provider", zap.Error(err))
	}

	// LLM client; without an API key the analysis layer degrades to the
	// keyword heuristic and placeholder summaries
	var completer ai.Completer
	if config.AI.APIKey != "" {
		client, err := ai.NewClient(&ai.Config{
			APIKey:    config.AI.APIKey,
			BaseURL:   config.AI.BaseURL,
			Model:     config.AI.Model,
			Timeout:   config.AI.Timeout,
			MaxTokens: config.AI.MaxTokens,
		}, log)
		if err != nil {
			log.Fatal("failed to create ai client", zap.Error(err))
		}
		completer = client
	} else {
		log.Warn("no ai api key configured, running with heuristic analysis only")
	}

	// Analysis layer
	analyzer := analysis.NewAnalyzer(completer, store, analysis.AnalyzerConfig{
		ResultTTL:        config.Cache.ResultTTL,
		SourceTTL:        config.Cache.SourceTTL,
		MaxContentTokens: config.AI.MaxTokens,
	}, log)
	summarizer := analysis.NewSummarizer(completer, store, analysis.SummarizerConfig{
		ResultTTL:        config.Cache.ResultTTL,
		MaxContentTokens: config.AI.MaxTokens,
	}, log)

	// Article processing pipeline
	pool, err := workerpool.New(config.Pipeline.MaxConcurrency, log)
	if err != nil {
		log.Fatal("failed to create worker pool", zap.Error(err))
	}
	defer pool.Release()

	retriever := newsbiz.NewRetriever(searcher, newsbiz.RetrieverConfig{
		SearchTimeout:  config.News.SearchTimeout,
		SampleFallback: config.News.SampleFallback,
	}, log)
	pipeline := newsbiz.NewPipeline(analyzer, summarizer, pool, log)
	newsUseCase := newsbiz.NewNewsUseCase(retriever, pipeline, store, newsbiz.UseCaseConfig{
		MaxLimit:     config.News.MaxLimit,
		DefaultLimit: 10,
		ResultTTL:    config.Cache.ResultTTL,
	}, log)

	// Preferences require the database; without it the endpoints stay
	// mounted but answer 503
	var prefsUseCase *prefsbiz.PrefsUseCase
	if d.DB != nil {
		prefsUseCase = prefsbiz.NewPrefsUseCase(prefsdata.NewPrefsRepo(d.DB))
	}

	// Services
	newsService := newsservice.NewNewsService(newsUseCase, log)
	prefsService := prefsservice.NewPrefsService(prefsUseCase, log)

	httpServer := server.NewHTTPServer(config, log, newsService, prefsService)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
