// Command rebuild regenerates the static pages for every set (or one,
// with --only) outside the server, for use from CI and cron.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrewdionne/polishpages/internal/app"
	"github.com/andrewdionne/polishpages/internal/audio"
	"github.com/andrewdionne/polishpages/internal/pipeline"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/publish"
	"github.com/andrewdionne/polishpages/internal/set"
)

func main() {
	only := flag.String("only", "", "rebuild a single set by name (without .json)")
	parallel := flag.Int("parallel", 0, "max concurrent set rebuilds (default from REBUILD_PARALLELISM)")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "production"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	cfg := app.LoadConfig(log)
	if *parallel > 0 {
		cfg.RebuildParallelism = *parallel
	}

	synth, ttsCfg, err := app.ResolveSynthesizer(ctx, log)
	if err != nil {
		log.Error("TTS bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer synth.Close()

	publisher, err := publish.NewPublisher(ctx, log, cfg.Publish, cfg.StaticDir)
	if err != nil {
		log.Error("Publisher bootstrap failed", "error", err)
		os.Exit(1)
	}

	store := set.NewStore(log, cfg.SetsDir)
	ensurer := audio.NewEnsurer(log, synth, cfg.StaticDir, ttsCfg)
	orch := pipeline.NewOrchestrator(
		log, store, ensurer, publisher,
		cfg.PagesDir, cfg.StaticDir, cfg.RebuildParallelism,
	)

	var results []*pipeline.Result
	if *only != "" {
		res, err := orch.Regenerate(ctx, *only)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", *only, err)
			os.Exit(1)
		}
		results = []*pipeline.Result{res}
	} else {
		results, err = orch.RebuildAll(ctx)
		if err != nil {
			fmt.Printf("Rebuild failed: %v\n", err)
			os.Exit(1)
		}
	}

	hadWarnings := false
	for _, res := range results {
		if len(res.Warnings) == 0 {
			fmt.Printf("OK   %s %v\n", res.Slug, res.Modes)
			continue
		}
		hadWarnings = true
		fmt.Printf("WARN %s %v\n", res.Slug, res.Modes)
		for _, w := range res.Warnings {
			fmt.Printf("     - %s\n", w)
		}
	}
	fmt.Printf("Rebuilt %d set(s)\n", len(results))
	if hadWarnings {
		os.Exit(1)
	}
}
