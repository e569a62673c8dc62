// Package batch runs the solver over every ".lp" file in a directory on a
// cron schedule, recording each run to history.
//
// What: Scheduler, wrapping a cron.Cron to periodically resolve a
// directory of LP documents.
// How: github.com/robfig/cron/v3 drives the timer, the same library and
// wiring style this codebase's job scheduler uses (cron.New with seconds
// support, one registered entry per job, a running-jobs guard so a slow
// run can't overlap itself). Parsed problems are kept in an
// internal/cache.ProblemCache keyed by source text, since a directory
// reappears unchanged across most cron ticks.
// Why: cron expressions are the natural fit for "solve this directory
// every night" without building a bespoke scheduler loop.
package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/StephenWattam/lpsolve/internal/cache"
	"github.com/StephenWattam/lpsolve/internal/history"
	"github.com/StephenWattam/lpsolve/internal/ir"
	"github.com/StephenWattam/lpsolve/internal/lpparser"
	"github.com/StephenWattam/lpsolve/internal/presolve"
	"github.com/StephenWattam/lpsolve/internal/simplex"
)

// Scheduler resolves every *.lp file under Directory each time its cron
// expression fires.
type Scheduler struct {
	directory string
	store     *history.Store
	cache     *cache.ProblemCache
	opts      simplex.Options

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// New returns a Scheduler over directory, using opts for every solve and
// recording results to store (which may be nil to skip history). Parsed
// problems are cached in problemCache, keyed by exact LP source text; pass
// nil to parse and presolve on every run instead.
func New(directory string, store *history.Store, problemCache *cache.ProblemCache, opts simplex.Options) *Scheduler {
	return &Scheduler{
		directory: directory,
		store:     store,
		cache:     problemCache,
		opts:      opts,
		cron:      cron.New(cron.WithSeconds()),
	}
}

// Start registers schedule (a standard cron.WithSeconds expression) and
// begins running the scheduler in the background.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.runOnce)
	if err != nil {
		return fmt.Errorf("scheduling batch run %q: %w", schedule, err)
	}
	s.cron.Start()
	log.Printf("batch scheduler started: %s, watching %s", schedule, s.directory)
	return nil
}

// Stop halts the scheduler and waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runOnce() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Printf("batch run skipped: previous run still in progress")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		log.Printf("batch run: reading %s: %v", s.directory, err)
		return
	}

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".lp" {
			continue
		}
		path := filepath.Join(s.directory, e.Name())
		if err := s.solveOne(path); err != nil {
			log.Printf("batch run: %s: %v", path, err)
		}
	}
}

func (s *Scheduler) solveOne(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading: %w", err)
	}

	build := func() (*ir.Problem, error) {
		problem, err := lpparser.ParseString(string(source))
		if err != nil {
			return nil, fmt.Errorf("parsing: %w", err)
		}
		if err := presolve.ToStandardForm(problem); err != nil {
			return nil, fmt.Errorf("presolving: %w", err)
		}
		return problem, nil
	}

	var problem *ir.Problem
	if s.cache != nil {
		problem, err = s.cache.GetOrBuild(string(source), build)
	} else {
		problem, err = build()
	}
	if err != nil {
		return err
	}

	sol, err := simplex.Solve(problem, s.opts)
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	log.Printf("batch run: %s solved (optimal=%v)", path, sol.Optimal)

	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := s.store.Record(ctx, path, problem.Mode.String(), objectiveValue(sol), sol.Optimal, 0); err != nil {
			return fmt.Errorf("recording history: %w", err)
		}
	}
	return nil
}

func objectiveValue(sol *ir.Solution) float64 {
	total := 0.0
	for _, t := range sol.Problem.Objective.Terms {
		total += t.Coefficient * sol.ValueOf(t.Variable)
	}
	return total
}
