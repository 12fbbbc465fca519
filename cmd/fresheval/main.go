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
	"github.com/egobogo/freshagent/internal/eval"
	model "github.com/egobogo/freshagent/internal/model"
	oai "github.com/egobogo/freshagent/internal/model/openai"
)

// fresheval grades response columns of a results CSV with the rule-based
// robust evaluator and/or the LLM-based relaxed evaluator.
func main() {
	var (
		input       = flag.String("input", "", "input CSV path")
		output      = flag.String("output", "", "output CSV path")
		configPath  = flag.String("config", "cfg/freshagent.yaml", "path to the YAML configuration")
		questionCol = flag.String("question-col", "question", "question column name")
		truthCol    = flag.String("ground-truth-col", "ground_truth", "ground-truth column name")
		responses   = flag.String("response-cols", "", "comma-separated response columns to evaluate")
		modes       = flag.String("modes", eval.ModeRobust, "comma-separated modes: robust, relaxed-llm")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *input == "" || *output == "" || *responses == "" {
		fmt.Fprintln(os.Stderr, "usage: fresheval -input results.csv -output graded.csv -response-cols model_response [-modes robust,relaxed-llm]")
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

	table, err := dataset.Load(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load results")
	}
	if table.Column(*truthCol) < 0 {
		log.Fatal().Str("column", *truthCol).Msg("ground-truth column not found")
	}

	modeList := splitList(*modes)
	var client model.ModelClient
	for _, mode := range modeList {
		if mode == eval.ModeRelaxedLLM && client == nil {
			apiKey := os.Getenv("OPENAI_API_KEY")
			if apiKey == "" {
				log.Fatal().Msg("relaxed-llm mode requires OPENAI_API_KEY")
			}
			grader := oai.NewOpenAIClient(apiKey, cfg.Eval.Model)
			grader.MaxTokens = 128
			client = grader
		}
	}

	ctx := context.Background()
	for _, responseCol := range splitList(*responses) {
		for _, mode := range modeList {
			log.Info().Str("column", responseCol).Str("mode", mode).Msg("evaluating")
			if err := eval.EvaluateTable(ctx, table, *questionCol, responseCol, *truthCol, mode, client); err != nil {
				log.Fatal().Err(err).Msg("evaluation failed")
			}

			tally := eval.Tally(table, eval.LabelColumn(mode, responseCol))
			accuracy := 0.0
			if len(table.Rows) > 0 {
				accuracy = float64(tally["correct"]) / float64(len(table.Rows))
			}
			log.Info().
				Str("column", responseCol).
				Str("mode", mode).
				Int("correct", tally["correct"]).
				Int("incorrect", tally["incorrect"]).
				Int("unknown", tally["unknown"]).
				Float64("accuracy", accuracy).
				Msg("graded")
		}
	}

	if err := table.Save(*output); err != nil {
		log.Fatal().Err(err).Msg("failed to save graded results")
	}
	log.Info().Str("path", *output).Msg("saved")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
