package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agenthands/tribunal/internal/batch"
	"github.com/agenthands/tribunal/internal/config"
	"github.com/agenthands/tribunal/internal/dataset"
	"github.com/agenthands/tribunal/internal/gateway"
	"github.com/agenthands/tribunal/internal/graph"
	"github.com/agenthands/tribunal/internal/llm"
	"github.com/agenthands/tribunal/internal/pipeline"
	"github.com/agenthands/tribunal/internal/store"
)

// Environment knobs: PROBLEM_ID runs a single problem, START_INDEX and
// MAX_PROBLEMS window the batch, SKIP_STAGES loads listed stages from disk.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s (%v), using defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	gw := gateway.New(client, gateway.Config{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: time.Duration(cfg.Retry.InitialDelaySeconds * float64(time.Second)),
		MaxTokens:    cfg.LLM.MaxTokens,
	})

	st, err := store.NewFileStore(cfg.Paths.RawOutputsDir)
	if err != nil {
		log.Fatalf("Failed to initialize output store: %v", err)
	}

	problems, err := dataset.Load(cfg.Paths.ProblemsFile)
	if err != nil {
		log.Fatalf("Failed to load problems: %v", err)
	}

	skip, err := pipeline.ParseSkipSet(os.Getenv("SKIP_STAGES"))
	if err != nil {
		log.Fatalf("Invalid SKIP_STAGES: %v", err)
	}

	pipe := pipeline.New(cfg, st, gw)

	if problemID := os.Getenv("PROBLEM_ID"); problemID != "" {
		problem, ok := dataset.FindByID(problems, problemID)
		if !ok {
			log.Fatalf("Problem '%s' not found in dataset", problemID)
		}
		run := pipe.Run(ctx, problem, skip)
		if !run.Success {
			log.Printf("Problem %s failed: %v", problemID, run.Errors)
			os.Exit(1)
		}
		log.Printf("Winner: %s, Final Answer: %s", run.Winner, run.WinningAnswer)
		return
	}

	runner := &batch.Runner{
		Pipeline:   pipe,
		Checkpoint: store.NewCheckpointFile(cfg.Paths.CheckpointFile),
		ResultsDir: cfg.Paths.ResultsDir,
		Skip:       skip,
	}

	if cfg.Graph.URI != "" {
		driver, err := graph.NewMemgraphDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password)
		if err != nil {
			log.Fatalf("Failed to connect to graph database: %v", err)
		}
		defer driver.Close(context.Background())
		if err := driver.BuildIndices(ctx); err != nil {
			log.Printf("Warning: failed to build graph indices: %v", err)
		}
		runner.Exporter = graph.NewExporter(driver, st)
	}

	opts := batch.Options{
		StartIndex: envInt("START_INDEX", 0),
		MaxCount:   envInt("MAX_PROBLEMS", 0),
	}

	_, summary, err := runner.RunAll(ctx, problems, opts)
	if err != nil {
		log.Fatalf("Batch failed: %v", err)
	}
	log.Printf("Successful: %d/%d", summary.Successful, summary.Processed)
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}
