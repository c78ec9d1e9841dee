package app

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/alihassanzadehk/ssnd-benchmark/internal/archive"
	"github.com/alihassanzadehk/ssnd-benchmark/internal/ctxlog"
	"github.com/alihassanzadehk/ssnd-benchmark/internal/loader"
	"github.com/alihassanzadehk/ssnd-benchmark/internal/ssnd"
)

// Env var names for object-storage credentials, typically supplied through a
// .env file.
const (
	envS3AccessKey = "SSND_S3_ACCESS_KEY"
	envS3SecretKey = "SSND_S3_SECRET_KEY"
)

// Run loads both record families from the configured source and prints a
// short summary. The source is closed on every exit path.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	src, err := a.openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	ld := loader.New(loader.Config{Patterns: a.patterns, Workers: a.cfg.Workers})

	instances, err := ld.LoadInstances(ctx, src)
	if err != nil {
		return fmt.Errorf("instance load failed: %w", err)
	}
	scenarios, err := ld.LoadScenarios(ctx, src)
	if err != nil {
		return fmt.Errorf("scenario load failed: %w", err)
	}

	a.printSummary(instances, scenarios)
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) openSource() (archive.Source, error) {
	if a.archivePath != "" {
		a.logger.Debug("Opening local archive.", "path", a.archivePath)
		return archive.OpenPath(a.archivePath)
	}
	s3 := a.cfg.S3
	a.logger.Debug("Opening s3 archive.", "endpoint", s3.Endpoint, "bucket", s3.Bucket)
	return archive.NewS3Source(archive.S3Config{
		Endpoint:  s3.Endpoint,
		Region:    s3.Region,
		AccessKey: os.Getenv(envS3AccessKey),
		SecretKey: os.Getenv(envS3SecretKey),
		Bucket:    s3.Bucket,
		Prefix:    s3.Prefix,
		UseSSL:    s3.UseSSL,
	})
}

// printSummary mirrors what a quick interactive inspection of the archive
// would show: totals plus one example instance, picked deterministically.
func (a *App) printSummary(instances map[ssnd.InstanceKey]*ssnd.Instance, scenarios map[ssnd.ScenarioKey]*ssnd.ScenarioSet) {
	fmt.Fprintf(a.outW, "Loaded %d instances and %d scenario sets.\n", len(instances), len(scenarios))

	if len(instances) > 0 {
		keys := make([]ssnd.InstanceKey, 0, len(instances))
		for k := range instances {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, b := keys[i], keys[j]
			if a.N != b.N {
				return a.N < b.N
			}
			if a.K != b.K {
				return a.K < b.K
			}
			if a.F != b.F {
				return a.F < b.F
			}
			return a.C < b.C
		})
		inst := instances[keys[0]]
		fmt.Fprintf(a.outW, "Example instance: %s | services: %d | requests: %d\n",
			inst.Name, len(inst.Services), len(inst.Reqs))
	}
}
