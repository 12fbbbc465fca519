package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/egobogo/freshagent/internal/config"
	"github.com/egobogo/freshagent/internal/config/filesys"
	"github.com/egobogo/freshagent/internal/dataset"
	"github.com/egobogo/freshagent/internal/freshprompt"
	oai "github.com/egobogo/freshagent/internal/model/openai"
	"github.com/egobogo/freshagent/internal/search"
)

const checkpointEvery = 20

// baseline runs the one-shot FreshPrompt pipeline over a CSV question set:
// search, format evidences, ask the model once, record the response.
func main() {
	var (
		input      = flag.String("input", "", "input CSV with a question column")
		output     = flag.String("output", "", "output CSV path")
		configPath = flag.String("config", "cfg/freshagent.yaml", "path to the YAML configuration")
		column     = flag.String("column", "model_response", "response column to fill")
		limit      = flag.Int("limit", 0, "optional row limit for quick tests")
		completion = flag.Bool("completions", false, "use the legacy Completions API instead of Chat Completions")
		demos      = flag.Bool("demos", false, "prepend the few-shot demo block to every prompt")
		verbose    = flag.Bool("verbose-demos", false, "use the long-form demo answers")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "usage: baseline -input data/questions.csv -output data/results.csv")
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
	}
	cfg := config.Current()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY is not set; add it to your environment or .env")
	}
	searchKey := os.Getenv("SERPER_API_KEY")
	if cfg.Provider == "serpapi" {
		searchKey = os.Getenv("SERPAPI_API_KEY")
	}
	if searchKey == "" {
		log.Fatal().Str("provider", cfg.Provider).Msg("search API key is not set")
	}

	table, err := dataset.Load(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dataset")
	}
	qIdx := table.Column("question")
	if qIdx < 0 {
		log.Fatal().Msg("dataset has no question column")
	}
	rIdx := table.EnsureColumn(*column)

	searcher, err := search.New(cfg.Provider, searchKey, search.DefaultOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create search client")
	}
	client := oai.NewOpenAIClient(apiKey, cfg.Model)

	suffix := freshprompt.PlainSuffix
	if cfg.FreshPrompt.CheckPremise {
		suffix = freshprompt.CheckPremiseSuffix
	}
	limits := freshprompt.LimitsForModel(cfg.Model)

	ctx := context.Background()

	var demoBlock string
	if *demos {
		demoBlock, err = freshprompt.BuildDemoBlock(ctx, searcher, limits, *verbose)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build the demo block")
		}
		log.Info().Int("chars", len(demoBlock)).Msg("demo block ready")
	}

	processed := 0
	for i := range table.Rows {
		if *limit > 0 && i >= *limit {
			break
		}
		if strings.TrimSpace(table.Get(i, rIdx)) != "" {
			continue
		}
		question := table.Get(i, qIdx)

		response := answerOnce(ctx, searcher, client, question, demoBlock, suffix, limits, !*completion)
		table.Set(i, rIdx, response)
		processed++

		log.Info().Int("row", i).Str("question", clip(question, 60)).Str("response", clip(response, 80)).Msg("answered")
		if processed%checkpointEvery == 0 {
			if err := table.Save(*output + ".tmp"); err != nil {
				log.Warn().Err(err).Msg("checkpoint write failed")
			} else {
				log.Info().Str("path", *output+".tmp").Msg("checkpoint written")
			}
		}
	}

	if err := table.Save(*output); err != nil {
		log.Fatal().Err(err).Msg("failed to save results")
	}
	log.Info().Str("path", *output).Int("processed", processed).Msg("saved")
}

// answerOnce builds the FreshPrompt block for one question and asks the
// model through the chat or legacy completion endpoint.
func answerOnce(ctx context.Context, searcher search.Client, client *oai.OpenAIClient, question, demoBlock, suffix string, limits freshprompt.Limits, chat bool) string {
	results, err := searcher.Search(ctx, question)
	if err != nil {
		return fmt.Sprintf("[ERROR] search failed: %v", err)
	}
	prompt := demoBlock + freshprompt.Format(question, results, suffix, limits)
	answer, err := client.Ask(ctx, prompt, chat)
	if err != nil {
		return fmt.Sprintf("[ERROR] %v", err)
	}
	return answer
}

func clip(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
