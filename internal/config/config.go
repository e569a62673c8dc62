// Package config loads the solver's YAML configuration file: tolerances,
// the iteration cap, the pivot heuristic, the run-history database path,
// and the batch scheduler's cron expression.
//
// What: Config and Load.
// How: gopkg.in/yaml.v3 unmarshal into a struct with yaml tags, the same
// library and Unmarshal-into-tagged-struct shape this codebase's test
// fixture loader uses for its own YAML documents, here with zero-value
// defaults applied after unmarshaling instead of a fixture lookup.
// Why: a flat YAML file is enough surface for a handful of solver knobs;
// nothing here needs the ceremony of a dedicated config library.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Batch configures the cron-driven directory batch solver.
type Batch struct {
	Schedule  string `yaml:"schedule"`
	Directory string `yaml:"directory"`
}

// Config is the full set of solver settings.
type Config struct {
	FloatTolerance float64 `yaml:"float_tolerance"`
	IterationLimit int     `yaml:"iteration_limit"`
	Heuristic      string  `yaml:"heuristic"` // "lowest" or "bland"
	HistoryDB      string  `yaml:"history_db"`
	Batch          Batch   `yaml:"batch"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		FloatTolerance: 1e-9,
		IterationLimit: 1000,
		Heuristic:      "lowest",
		HistoryDB:      "lpsolve_history.db",
	}
}

// Load reads and parses a YAML configuration file at path, filling in
// defaults for any field the file leaves zero-valued.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.FloatTolerance == 0 {
		cfg.FloatTolerance = 1e-9
	}
	if cfg.IterationLimit == 0 {
		cfg.IterationLimit = 1000
	}
	if cfg.Heuristic == "" {
		cfg.Heuristic = "lowest"
	}

	return cfg, nil
}
