package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/brensch/tiles/executor/runner"
	"github.com/brensch/tiles/loader"
	"github.com/brensch/tiles/logging"
	"github.com/brensch/tiles/store"
)

func main() {
	problemPath := flag.String("problem", getEnvOrDefault("TILES_PROBLEM", ""), "Problem file (text or .yaml)")
	timeLimit := flag.Duration("time-limit", getEnvDurationOrDefault("TILES_TIME_LIMIT", 60*time.Second), "Time budget per strategy (0 = none)")
	methods := flag.String("strategies", getEnvOrDefault("TILES_STRATEGIES", "AStar0,AStarH1,AStarH2"), "Comma separated search methods: AStar0, AStarH1, AStarH2, BFS")
	maxNodes := flag.Int("max-nodes", getEnvIntOrDefault("TILES_MAX_NODES", 0), "Stop each search after this many expansions (0 = no limit)")
	resultsOut := flag.String("results-out", getEnvOrDefault("TILES_RESULTS_OUT", ""), "If set, write a parquet summary of every run into this directory")
	showSteps := flag.Bool("steps", getEnvBoolOrDefault("TILES_STEPS", true), "Print every state on each solution path")
	logFormat := flag.String("log-format", getEnvOrDefault("TILES_LOG_FORMAT", "text"), "Log format: text, json or pretty")
	logLevel := flag.String("log-level", getEnvOrDefault("TILES_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flag.Parse()

	// Positional form: executor problemfile [timelimit-secs]
	if *problemPath == "" && flag.NArg() > 0 {
		*problemPath = flag.Arg(0)
		if flag.NArg() > 1 {
			secs, err := strconv.Atoi(flag.Arg(1))
			if err != nil {
				fmt.Fprintf(os.Stderr, "time limit %q: %v\n", flag.Arg(1), err)
				os.Exit(2)
			}
			*timeLimit = time.Duration(secs) * time.Second
		}
	}
	if *problemPath == "" {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] problemfile [timelimit-secs]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger, err := logging.New(os.Stderr, *logFormat, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	if err := run(*problemPath, *methods, *timeLimit, *maxNodes, *resultsOut, *showSteps); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(problemPath, methodList string, timeLimit time.Duration, maxNodes int, resultsOut string, showSteps bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	methods, err := runner.ParseMethods(methodList)
	if err != nil {
		return err
	}
	problem, err := loader.Load(problemPath)
	if err != nil {
		return err
	}

	slog.Info("loaded problem",
		"problem", problem.Name,
		"grid", problem.GridSize,
		"blocks", problem.Blocks.String(),
		"time_limit", timeLimit,
	)

	fmt.Println()
	fmt.Printf("Finding solutions for grid of size %d with blocks: %s\n", problem.GridSize, problem.Blocks)
	fmt.Println("***")
	fmt.Println()

	cfg := runner.Config{TimeLimit: timeLimit, MaxNodes: maxNodes}
	rows := make([]store.RunRow, 0, len(methods))
	start := time.Now()

	for _, m := range methods {
		if ctx.Err() != nil {
			slog.Warn("interrupted; skipping remaining strategies", "next", m.Name)
			break
		}

		slog.Debug("starting search", "method", m.Name)
		o := runner.Run(ctx, cfg, m, problem.GridSize, problem.Blocks)
		slog.Info("search finished",
			"method", m.Name,
			"run_id", o.RunID,
			"success", o.Success,
			"depth", o.Depth(),
			"nodes", o.NodesExplored,
			"elapsed", o.Elapsed,
		)
		if o.Success && !o.Checked {
			slog.Error("solution failed the goal check", "method", m.Name, "run_id", o.RunID)
		}

		if o.Success && showSteps {
			if err := runner.DisplaySteps(os.Stdout, o); err != nil {
				return err
			}
		}
		if err := runner.PrintSummary(os.Stdout, o); err != nil {
			return err
		}
		fmt.Println()
		fmt.Println()

		rows = append(rows, o.Row(problem.Name))
	}

	fmt.Printf("Took %.3f seconds\n", time.Since(start).Seconds())
	slog.Debug("all strategies done", "elapsed", time.Since(start))

	if resultsOut != "" && len(rows) > 0 {
		outPath, err := store.WriteRunsBatch(resultsOut, rows)
		if err != nil {
			return fmt.Errorf("export runs: %w", err)
		}
		slog.Info("wrote run summaries", "path", outPath, "rows", len(rows))
	}
	return nil
}

// Environment variable helpers
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
