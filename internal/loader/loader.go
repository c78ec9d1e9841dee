package loader

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/alihassanzadehk/ssnd-benchmark/internal/archive"
	"github.com/alihassanzadehk/ssnd-benchmark/internal/ctxlog"
	"github.com/alihassanzadehk/ssnd-benchmark/internal/ssnd"
)

// Config tunes a Loader. Zero-value Patterns select the defaults; Workers
// below 1 means sequential parsing.
type Config struct {
	Patterns Patterns
	Workers  int
}

// Loader matches and parses benchmark entries from an archive.Source.
type Loader struct {
	patterns Patterns
	workers  int
}

// New builds a Loader from cfg.
func New(cfg Config) *Loader {
	p := cfg.Patterns
	if p.Instance == nil || p.Scenario == nil {
		def := DefaultPatterns()
		if p.Instance == nil {
			p.Instance = def.Instance
		}
		if p.Scenario == nil {
			p.Scenario = def.Scenario
		}
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Loader{patterns: p, workers: workers}
}

// LoadInstances parses every entry whose base name matches the instance
// pattern and returns the instances keyed by (N, K, Freq, sCap). The first
// failing entry aborts the whole load; on success the key set reflects
// exactly the matching entries.
func (l *Loader) LoadInstances(ctx context.Context, src archive.Source) (map[ssnd.InstanceKey]*ssnd.Instance, error) {
	logger := ctxlog.FromContext(ctx)

	entries, err := src.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("loader: list entries: %w", err)
	}

	type job struct {
		name string
		key  ssnd.InstanceKey
	}
	var jobs []job
	for _, name := range entries {
		key, ok, err := l.patterns.matchInstance(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Debug("Entry skipped, no instance pattern match.", "entry", name)
			continue
		}
		jobs = append(jobs, job{name: name, key: key})
	}
	logger.Debug("Instance entries matched.", "matched", len(jobs), "total", len(entries))

	out := make(map[ssnd.InstanceKey]*ssnd.Instance, len(jobs))
	var mu sync.Mutex
	err = l.runJobs(ctx, len(jobs), func(ctx context.Context, i int) error {
		j := jobs[i]
		text, err := l.readText(ctx, src, j.name)
		if err != nil {
			return err
		}
		inst, err := ssnd.ParseInstance(text, j.key)
		if err != nil {
			return fmt.Errorf("loader: entry %s: %w", j.name, err)
		}
		mu.Lock()
		out[j.key] = inst
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Instances loaded.", "count", len(out))
	return out, nil
}

// LoadScenarios parses every entry whose base name matches the scenario
// pattern and returns the scenario sets keyed by (N, K, Freq, sCap, nu).
// Same all-or-nothing contract as LoadInstances.
func (l *Loader) LoadScenarios(ctx context.Context, src archive.Source) (map[ssnd.ScenarioKey]*ssnd.ScenarioSet, error) {
	logger := ctxlog.FromContext(ctx)

	entries, err := src.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("loader: list entries: %w", err)
	}

	type job struct {
		name string
		key  ssnd.ScenarioKey
	}
	var jobs []job
	for _, name := range entries {
		key, ok, err := l.patterns.matchScenario(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Debug("Entry skipped, no scenario pattern match.", "entry", name)
			continue
		}
		jobs = append(jobs, job{name: name, key: key})
	}
	logger.Debug("Scenario entries matched.", "matched", len(jobs), "total", len(entries))

	out := make(map[ssnd.ScenarioKey]*ssnd.ScenarioSet, len(jobs))
	var mu sync.Mutex
	err = l.runJobs(ctx, len(jobs), func(ctx context.Context, i int) error {
		j := jobs[i]
		text, err := l.readText(ctx, src, j.name)
		if err != nil {
			return err
		}
		set, err := ssnd.ParseScenarioSet(text, j.key)
		if err != nil {
			return fmt.Errorf("loader: entry %s: %w", j.name, err)
		}
		mu.Lock()
		out[j.key] = set
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Scenario sets loaded.", "count", len(out))
	return out, nil
}

// readText reads an entry and decodes it as UTF-8, replacing invalid byte
// sequences instead of failing. Benchmark archives occasionally carry stray
// bytes in comments; the row parsers reject anything that matters.
func (l *Loader) readText(ctx context.Context, src archive.Source, name string) (string, error) {
	data, err := src.ReadEntry(ctx, name)
	if err != nil {
		return "", fmt.Errorf("loader: entry %s: %w", name, err)
	}
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return text, nil
}
