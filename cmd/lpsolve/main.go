package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/StephenWattam/lpsolve/internal/batch"
	"github.com/StephenWattam/lpsolve/internal/boundsimport"
	"github.com/StephenWattam/lpsolve/internal/cache"
	"github.com/StephenWattam/lpsolve/internal/config"
	"github.com/StephenWattam/lpsolve/internal/history"
	"github.com/StephenWattam/lpsolve/internal/ir"
	"github.com/StephenWattam/lpsolve/internal/lpparser"
	"github.com/StephenWattam/lpsolve/internal/presolve"
	"github.com/StephenWattam/lpsolve/internal/report"
	"github.com/StephenWattam/lpsolve/internal/rpcserver"
	"github.com/StephenWattam/lpsolve/internal/simplex"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "lpsolve: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("lpsolve", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: lpsolve --lp FILE [options]\n")
		fs.PrintDefaults()
	}

	var (
		lpFile     = fs.String("lp", "", "LP-format input file (required)")
		configFile = fs.String("config", "", "YAML configuration file")
		format     = fs.String("format", "table", "Output format: table|csv|json|yaml")
		heuristic  = fs.String("heuristic", "", "Pivot heuristic override: lowest|bland")
		boundsFile = fs.String("bounds-csv", "", "CSV bounds overlay to merge onto the parsed problem")
		historyDB  = fs.String("history-db", "", "Path to a sqlite run-history database")
		batchDir   = fs.String("batch-dir", "", "Directory of .lp files to solve on a cron schedule instead of a single --lp run")
		batchCron  = fs.String("batch-cron", "", "Cron expression for --batch-dir (cron.WithSeconds syntax)")
		rpcGRPC    = fs.String("rpc-grpc", "", "gRPC listen address to serve Solve on, instead of solving once")
		rpcHTTP    = fs.String("rpc-http", "", "HTTP listen address to serve /solve on")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *heuristic != "" {
		cfg.Heuristic = *heuristic
	}
	if *historyDB != "" {
		cfg.HistoryDB = *historyDB
	}

	opts := simplex.Options{
		Heuristic:      heuristicFromName(cfg.Heuristic),
		IterationLimit: cfg.IterationLimit,
		FloatTolerance: cfg.FloatTolerance,
	}

	progress := isatty.IsTerminal(os.Stderr.Fd())

	if *rpcGRPC != "" || *rpcHTTP != "" {
		return rpcserver.Serve(*rpcGRPC, *rpcHTTP, opts)
	}

	dir, schedule := *batchDir, *batchCron
	if dir == "" {
		dir = cfg.Batch.Directory
	}
	if schedule == "" {
		schedule = cfg.Batch.Schedule
	}

	if dir != "" {
		if schedule == "" {
			return fmt.Errorf("--batch-dir requires --batch-cron")
		}
		var store *history.Store
		if cfg.HistoryDB != "" {
			s, err := history.Open(cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer s.Close()
			store = s
		}

		sched := batch.New(dir, store, cache.New(0), opts)
		if err := sched.Start(schedule); err != nil {
			return err
		}
		select {} // runs until the process is killed
	}

	if *lpFile == "" {
		fs.Usage()
		return fmt.Errorf("--lp is required")
	}

	return solveOne(*lpFile, *boundsFile, *format, cfg, opts, progress)
}

func heuristicFromName(name string) simplex.Heuristic {
	if name == "bland" {
		return simplex.Bland
	}
	return simplex.Lowest
}

func solveOne(lpFile, boundsFile, format string, cfg config.Config, opts simplex.Options, progress bool) error {
	start := time.Now()

	source, err := os.ReadFile(lpFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", lpFile, err)
	}

	if progress {
		log.Printf("parsing %s (%s)", lpFile, humanize.Bytes(uint64(len(source))))
	}

	problem, err := lpparser.ParseString(string(source))
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	if boundsFile != "" {
		f, err := os.Open(boundsFile)
		if err != nil {
			return fmt.Errorf("opening bounds overlay %s: %w", boundsFile, err)
		}
		defer f.Close()
		if err := boundsimport.Apply(problem, f); err != nil {
			return fmt.Errorf("applying bounds overlay: %w", err)
		}
	}

	if progress {
		log.Printf("presolving (%s variables, %s constraints)",
			humanize.Comma(int64(problem.Symbols.Len())), humanize.Comma(int64(len(problem.ConstraintNames()))))
	}
	if err := presolve.ToStandardForm(problem); err != nil {
		return fmt.Errorf("presolve error: %w", err)
	}

	sol, err := simplex.Solve(problem, opts)
	if err != nil {
		return fmt.Errorf("solve error: %w", err)
	}

	if progress {
		log.Printf("solved in %s", time.Since(start).Round(time.Microsecond))
	}

	if cfg.HistoryDB != "" {
		if store, err := history.Open(cfg.HistoryDB); err == nil {
			defer store.Close()
			_, _ = store.Record(context.Background(), lpFile, problem.Mode.String(), objectiveValue(sol), sol.Optimal, 0)
		}
	}

	return report.Write(os.Stdout, sol, format)
}

func objectiveValue(sol *ir.Solution) float64 {
	total := 0.0
	for _, t := range sol.Problem.Objective.Terms {
		total += t.Coefficient * sol.ValueOf(t.Variable)
	}
	return total
}
