package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/egobogo/freshagent/internal/agent"
	"github.com/egobogo/freshagent/internal/config"
	"github.com/egobogo/freshagent/internal/config/filesys"
	"github.com/egobogo/freshagent/internal/evidence/embedding/openai"
	evhnsw "github.com/egobogo/freshagent/internal/evidence/hnsw"
	oai "github.com/egobogo/freshagent/internal/model/openai"
	"github.com/egobogo/freshagent/internal/tools"
)

func main() {
	var (
		question   = flag.String("q", "", "question to answer")
		configPath = flag.String("config", "cfg/freshagent.yaml", "path to the YAML configuration")
		modelName  = flag.String("model", "", "override the configured model")
		provider   = flag.String("provider", "", "override the search provider (serper or serpapi)")
		debug      = flag.Bool("debug", false, "print the full message trace")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *question == "" {
		fmt.Fprintln(os.Stderr, "usage: freshagent -q \"<question>\" [-model gpt-4o] [-provider serper] [-debug]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found; using system environment variables")
	}

	if prov, err := filesys.NewFilesysConfigProvider(*configPath); err == nil {
		config.SetProvider(prov)
		if err := config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load configuration")
		}
	} else {
		log.Debug().Err(err).Msg("no config file; using defaults")
	}
	cfg := config.Current()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY is not set; add it to your environment or .env")
	}

	agentCfg := agent.Config{
		Model:       cfg.Model,
		Provider:    cfg.Provider,
		MaxSteps:    cfg.Agent.MaxSteps,
		Temperature: cfg.Agent.Temperature,
		Timezone:    cfg.Timezone,
		Debug:       cfg.Agent.Debug || *debug,
	}
	if *modelName != "" {
		agentCfg.Model = *modelName
	}
	if *provider != "" {
		agentCfg.Provider = *provider
	}

	client := oai.NewOpenAIClient(apiKey, agentCfg.Model)
	registry := tools.DefaultRegistry(agentCfg.Provider)
	a := agent.New(agentCfg, client, registry)

	if cfg.Evidence.Enabled {
		embedder := openai.NewOpenAIEmbeddingProvider(apiKey, cfg.Evidence.EmbeddingModel)
		a.SetEvidenceStore(evhnsw.New(embedder, 0))
	}

	answer, err := a.RunParts(context.Background(), *question)
	if err != nil {
		log.Fatal().Err(err).Msg("agent run failed")
	}

	fmt.Println(answer.Full)
	if answer.Direct != "" {
		fmt.Println("\ndirect answer:", answer.Direct)
	}
}
