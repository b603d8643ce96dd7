package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"schoolsched/internal/config"
	"schoolsched/internal/engine"
	"schoolsched/internal/model"
	"schoolsched/internal/sched"
	"schoolsched/internal/solve"
)

type output struct {
	Status      string                   `json:"status"`
	Quality     any                      `json:"quality"`
	Diagnostics []string                 `json:"diagnostics"`
	Timetable   map[string][]sched.Entry `json:"timetable"`
}

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the JSON problem file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	configPathPtr := flag.String("config", "", "Path to an optional configuration file")
	limitPtr := flag.Duration("limit", 0, "Solver wall-clock budget; overrides the configured limit when positive")
	flag.Parse()

	filePath := *filePathPtr
	outFile := *outFilePathPtr

	cfg, err := config.Load(*configPathPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := buildLogger(cfg.Log)
	defer logger.Sync() //nolint:errcheck

	// Validate arguments
	if filePath == "" {
		logger.Fatal("a problem file must be specified")
	}

	limit := cfg.Solver.TimeLimit
	if *limitPtr > 0 {
		limit = *limitPtr
	}

	// Extract the problem
	problem, err := sched.ProblemFromJSON(filePath)
	if err != nil {
		logger.Fatal("cannot parse problem file", zap.Error(err))
	}
	slots := problem.Grid()

	// Initialize engines
	solver := solve.NewGophersatSolver(logger)
	generator := engine.New(cfg, solver, logger)

	weights := model.Weights{
		Gap:     cfg.Weights.Gap,
		Balance: cfg.Weights.Balance,
		Block:   cfg.Weights.Block,
		Soft:    cfg.Weights.Soft,
	}

	// Generate the timetable
	result, err := generator.Generate(problem.Courses, slots, problem.Constraints, limit, weights)
	if err != nil {
		logger.Fatal("an error occurred during timetable construction", zap.Error(err))
	}

	// Build per-class output from the flat schedule; entries arrive in
	// deterministic order, so the output is reproducible
	perClassTimetable := lo.GroupBy(result.Schedule, func(entry sched.Entry) string { return entry.ClassID })

	outputJson, err := json.MarshalIndent(output{
		Status:      result.Status.String(),
		Quality:     result.Quality,
		Diagnostics: result.Diagnostics,
		Timetable:   perClassTimetable,
	}, "", "  ")
	if err != nil {
		logger.Fatal("an error occurred while building output json", zap.Error(err))
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(outputJson))
	} else {
		if err := os.WriteFile(outFile, outputJson, 0666); err != nil {
			logger.Fatal("an error occurred while writing to the output file", zap.Error(err))
		}
	}

	if result.Status.Solved() {
		os.Exit(10)
	}
	os.Exit(20)
}

func buildLogger(cfg config.LogConfig) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
