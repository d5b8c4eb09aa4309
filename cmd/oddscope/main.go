package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/oddscope/pkg/ai"
	"github.com/umputun/oddscope/pkg/config"
	"github.com/umputun/oddscope/pkg/pipeline"
	"github.com/umputun/oddscope/pkg/repository"
	"github.com/umputun/oddscope/pkg/scraper"
	"github.com/umputun/oddscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLog(opts.Debug, cfg.AI.APIKey, cfg.Sources.Twitter.APIKey,
		cfg.Sources.YouTube.APIKey, cfg.Sources.Freesound.APIKey)

	lgr.Printf("[INFO] starting oddscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, opts.Debug); err != nil {
		lgr.Printf("[ERROR] server failed: %v", err)
		os.Exit(1)
	}

	lgr.Printf("[INFO] shutdown complete")
}

func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, debug bool) error {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	registry := makeRegistry(cfg)
	enhancer := ai.NewEnhancer(cfg.GetAIConfig())
	if enhancer.Available() {
		lgr.Printf("[INFO] ai enhancement enabled, model %s", cfg.AI.Model)
	} else {
		lgr.Printf("[INFO] ai enhancement disabled, heuristic scoring only")
	}

	proc := pipeline.New(registry, enhancer, &pipelineStore{repos: repos}, cfg.GetPipelineConfig())

	srv := server.New(cfg, &serverStore{repos: repos}, proc, revision, debug)
	return srv.Run(ctx)
}

// makeRegistry registers the adapters enabled in the config
func makeRegistry(cfg *config.Config) *scraper.Registry {
	timeout := cfg.Server.Timeout
	registry := scraper.NewRegistry()

	if cfg.Sources.Reddit.Enabled {
		registry.Register(scraper.NewRedditAdapter(cfg.Sources.Reddit.Subreddits, timeout))
	}
	if cfg.Sources.RSS.Enabled {
		registry.Register(scraper.NewRSSAdapter(cfg.Sources.RSS.Feeds, timeout))
	}
	if cfg.Sources.Twitter.Enabled {
		registry.Register(scraper.NewTwitterAdapter(cfg.Sources.Twitter.APIKey, timeout))
	}
	if cfg.Sources.YouTube.Enabled {
		registry.Register(scraper.NewYouTubeAdapter(cfg.Sources.YouTube.APIKey, timeout))
	}
	if cfg.Sources.Freesound.Enabled {
		registry.Register(scraper.NewFreesoundAdapter(cfg.Sources.Freesound.APIKey, timeout))
	}
	if cfg.Sources.Archive.Enabled {
		registry.Register(scraper.NewArchiveAdapter(timeout))
	}

	lgr.Printf("[INFO] registered %d source adapters", len(registry.All()))
	return registry
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
