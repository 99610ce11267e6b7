// Command loaddocs bulk-ingests every supported document in a directory into
// the knowledge base and prints a per-file report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

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

func main() {
	dir := flag.String("dir", "./documents", "directory with documents to ingest")
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	clear := flag.Bool("clear", false, "clear the knowledge base before ingesting")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("loaddocs")

	db, err := postgres.GetDB(&cfg.Database, logger.New("postgres"))
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	defer db.Close()

	embedder, err := embedding.NewModel(cfg.Embedding.Provider, cfg.Embedding.Model, cfg.Embedding.APIKey, cfg.Embedding.BaseURL)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	model, err := llm.NewModel(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.APIKey, cfg.LLM.BaseURL)
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	store := vectorstore.NewPostgresStore(db, logger.New("vectorstore"))

	chunkOpts := schema.ChunkOptions{
		ChunkSize:          cfg.Chunking.ChunkSize,
		ChunkOverlap:       cfg.Chunking.ChunkOverlap,
		PreserveParagraphs: cfg.Chunking.PreserveParagraphs,
	}

	ingestor := pipeline.NewIngestor(splitters.NewParagraphSplitter(), embedder, store, logger.New("ingestor"))
	retriever := pipeline.NewRetriever(embedder, store, logger.New("retriever"))
	answerer := pipeline.NewAnswerer(retriever, model, logger.New("answerer"), cfg.Retrieval.MaxResults, cfg.Retrieval.SimilarityThreshold)
	svc := service.NewAgentService(ingestor, answerer, store, model, embedder, chunkOpts, appLogger)

	ctx := context.Background()

	if *clear {
		if err := svc.Clear(ctx); err != nil {
			appLogger.Fatal(err.Error())
		}
		fmt.Println("Knowledge base cleared")
	}

	results, err := svc.IngestDirectory(ctx, *dir)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	if len(results) == 0 {
		fmt.Printf("No supported documents found in %s\n", *dir)
		return
	}

	failed := 0
	totalChunks := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			fmt.Printf("FAIL  %-40s %s\n", r.File, r.Error)
			continue
		}
		totalChunks += r.Chunks
		fmt.Printf("OK    %-40s %d chunks\n", r.File, r.Chunks)
	}

	stats, err := svc.Statistics(ctx)
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	fmt.Printf("\nIngested %d/%d files, %d chunks; knowledge base now holds %d documents\n",
		len(results)-failed, len(results), totalChunks, stats.TotalDocuments)

	if failed > 0 {
		os.Exit(1)
	}
}
