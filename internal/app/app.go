package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/andrewdionne/polishpages/internal/audio"
	httpx "github.com/andrewdionne/polishpages/internal/http"
	httpH "github.com/andrewdionne/polishpages/internal/http/handlers"
	"github.com/andrewdionne/polishpages/internal/pipeline"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/platform/tts"
	"github.com/andrewdionne/polishpages/internal/publish"
	"github.com/andrewdionne/polishpages/internal/set"
)

type App struct {
	Log          *logger.Logger
	Cfg          Config
	Router       *gin.Engine
	Store        *set.Store
	Orchestrator *pipeline.Orchestrator
	synth        tts.Synthesizer
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	synth, ttsCfg, err := ResolveSynthesizer(ctx, log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	publisher, err := publish.NewPublisher(ctx, log, cfg.Publish, cfg.StaticDir)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init publisher: %w", err)
	}

	store := set.NewStore(log, cfg.SetsDir)
	ensurer := audio.NewEnsurer(log, synth, cfg.StaticDir, ttsCfg)
	orch := pipeline.NewOrchestrator(
		log, store, ensurer, publisher,
		cfg.PagesDir, cfg.StaticDir, cfg.RebuildParallelism,
	)

	router := httpx.NewRouter(httpx.RouterConfig{
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
		SetHandler:     httpH.NewSetHandler(log, orch, store),
		HealthHandler:  httpH.NewHealthHandler(),
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Router:       router,
		Store:        store,
		Orchestrator: orch,
		synth:        synth,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(a.Cfg.Addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.synth != nil {
		_ = a.synth.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
