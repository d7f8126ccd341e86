package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"vendorrag/internal/catalog"
	"vendorrag/internal/composer"
	"vendorrag/internal/config"
	"vendorrag/internal/domain"
	"vendorrag/internal/embedding/openai"
	"vendorrag/internal/embedding/tfidf"
	"vendorrag/internal/estimator"
	"vendorrag/internal/filter"
	"vendorrag/internal/generation/groq"
	"vendorrag/internal/index"
	"vendorrag/internal/planner"
	"vendorrag/internal/service"
	"vendorrag/internal/tui"
	"vendorrag/internal/vectorstore"
	"vendorrag/internal/vectorstore/memory"
	"vendorrag/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var noFilters bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/vendorrag/config.yaml if not provided)")
	flag.BoolVar(&noFilters, "no-filters", false, "Disable keyword-triggered post-filtering")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: vendorrag [--config=config.yaml] [--no-filters] products.json [dir-or-glob ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var st vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		st = memory.NewStorage()
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		st = qdrant.NewStorage(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	gen, err := groq.NewClient(groq.Config{
		BaseURL:     cfg.Generator.BaseURL,
		APIKeyEnv:   cfg.Generator.APIKeyEnv,
		Model:       cfg.Generator.Model,
		Temperature: cfg.Generator.Temperature,
		Timeout:     time.Duration(cfg.Generator.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("generator init failed: %v", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}

	retriever := index.New(emb, st)
	comp := composer.New(gen, composer.Options{
		MaxContextDocs:  cfg.Retrieval.MaxContextDocs,
		DocCharBudget:   cfg.Retrieval.DocCharBudget,
		ContextCharCap:  cfg.Retrieval.ContextCharCap,
		PromptCharCap:   cfg.Retrieval.PromptCharCap,
		AnswerMaxTokens: cfg.Retrieval.AnswerMaxTokens,
	})
	est := estimator.New(cat, estimator.Costs{
		CementPerCubicMeterRs: cfg.Estimator.CementPerCubicMeterRs,
		BrickPerUnitRs:        cfg.Estimator.BrickPerUnitRs,
		SwitchgearLineupCr:    cfg.Estimator.SwitchgearLineupCr,
		TransformerUnitCr:     cfg.Estimator.TransformerUnitCr,
		CoolingUnitCr:         cfg.Estimator.CoolingUnitCr,
	})
	svc := service.New(
		retriever,
		planner.New(cat, cfg.KnownPlaces),
		filter.New(cfg.KnownPlaces),
		est,
		cat,
		comp,
		!noFilters,
	)

	n, err := svc.Ingest(inputs)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	m := tui.New(svc, n, cfg.Retrieval.TopK)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
