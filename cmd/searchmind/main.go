package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"searchmind/internal/agent/api"
	"searchmind/internal/agent/service"
	"searchmind/internal/config"
	"searchmind/internal/database/postgres"
	"searchmind/internal/embedding"
	"searchmind/internal/llm"
	"searchmind/internal/rag/pipeline"
	"searchmind/internal/rag/schema"
	"searchmind/internal/rag/splitters"
	"searchmind/internal/rag/storages/vectorstore"
	"searchmind/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; environment variables may come from elsewhere.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("searchmind")
	appLogger.Info("Logger initialized")

	db, err := postgres.GetDB(&cfg.Database, logger.New("postgres"))
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	defer db.Close()
	appLogger.Info("Database connection established")

	embedder, err := embedding.NewModel(cfg.Embedding.Provider, cfg.Embedding.Model, cfg.Embedding.APIKey, cfg.Embedding.BaseURL)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	model, err := llm.NewModel(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.APIKey, cfg.LLM.BaseURL)
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	store := vectorstore.NewPostgresStore(db, logger.New("vectorstore"))
	splitter := splitters.NewParagraphSplitter()

	chunkOpts := schema.ChunkOptions{
		ChunkSize:          cfg.Chunking.ChunkSize,
		ChunkOverlap:       cfg.Chunking.ChunkOverlap,
		PreserveParagraphs: cfg.Chunking.PreserveParagraphs,
	}

	ingestor := pipeline.NewIngestor(splitter, embedder, store, logger.New("ingestor"))
	retriever := pipeline.NewRetriever(embedder, store, logger.New("retriever"))
	answerer := pipeline.NewAnswerer(retriever, model, logger.New("answerer"), cfg.Retrieval.MaxResults, cfg.Retrieval.SimilarityThreshold)

	svc := service.NewAgentService(ingestor, answerer, store, model, embedder, chunkOpts, logger.New("agent"))
	appLogger.Info("Dependencies injected")

	router := api.SetupRouter(api.NewHandler(svc, logger.New("api")))

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting server on " + cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal(err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown: " + err.Error())
	}
	appLogger.Info("Server stopped")
}
