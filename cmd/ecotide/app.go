package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	redis "github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rajasatyajit/EcoTide/config"
	"github.com/rajasatyajit/EcoTide/internal/logger"
	"github.com/rajasatyajit/EcoTide/internal/metrics"
	"github.com/rajasatyajit/EcoTide/internal/model"
	"github.com/rajasatyajit/EcoTide/internal/scoring"
	"github.com/rajasatyajit/EcoTide/internal/stats"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}

	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to a YAML config file (default: $ECOTIDE_CONFIG)",
	}
)

// app carries state shared by every command of one invocation
type app struct {
	out    io.Writer
	logOut io.Writer
	format string

	cfg    *config.Config
	engine   *scoring.Engine
	redis    *redis.Client
	counters *metrics.Counters

	stopPublisher context.CancelFunc
	publisherDone sync.WaitGroup
}

func newApp(out, logOut io.Writer) *app {
	return &app{out: out, logOut: logOut, format: formatJSON}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:    "ecotide",
		Usage:   "Sustainability grades for e-commerce product titles",
		Version: fmt.Sprintf("%s (%s - %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			debugFlag,
			formatFlag,
			configFlag,
		},
		Commands: []*cli.Command{
			a.scoreCmd(),
			a.batchCmd(),
			a.trainCmd(),
			a.categoriesCmd(),
			a.statsCmd(),
			a.suggestCmd(),
		},
		Before: a.before,
		After:  a.after,
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	switch f := cmd.String(formatFlag.Name); f {
	case formatJSON:
	case formatYAML, "yml":
		a.format = formatYAML
	default:
		return ctx, fmt.Errorf("unsupported format %q", f)
	}

	path := cmd.String(configFlag.Name)
	var err error
	if path != "" {
		a.cfg, err = config.LoadFile(path)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return ctx, fmt.Errorf("load config: %w", err)
	}

	level := a.cfg.Logging.Level
	if cmd.Bool(debugFlag.Name) {
		level = "debug"
	}
	logger.InitWithWriter(a.logOut, level, a.cfg.Logging.Format)

	if a.cfg.Metrics.Enabled {
		a.counters = metrics.NewCounters()
		metrics.SetDefault(a.counters)
	} else {
		metrics.Init()
	}

	var artifact *model.Artifact
	if a.cfg.Scoring.ModelEnabled {
		artifact = model.LoadTrainedArtifact(a.cfg.Scoring.ArtifactPath)
	}
	a.engine = scoring.New(scoring.Options{
		Artifact: artifact,
		Seed:     a.cfg.Scoring.RandomSeed,
	})

	if a.cfg.Redis.URL != "" {
		a.startStats(ctx)
	}
	return ctx, nil
}

// startStats connects to Redis and publishes this run's counters in the
// background. Redis being unavailable only disables sharing.
func (a *app) startStats(ctx context.Context) {
	client, err := stats.NewClient(a.cfg.Redis.URL)
	if err != nil {
		logger.Warn("Redis unavailable; statistics stay local", "error", err)
		return
	}
	a.redis = client

	pubCtx, cancel := context.WithCancel(ctx)
	a.stopPublisher = cancel
	pub := stats.NewPublisher(client, a.engine.Recorder(), a.cfg.Redis.KeyPrefix, a.cfg.Redis.PublishInterval, a.cfg.Redis.TTL)
	a.publisherDone.Add(1)
	go func() {
		defer a.publisherDone.Done()
		pub.Run(pubCtx)
	}()
}

func (a *app) after(ctx context.Context, cmd *cli.Command) error {
	if a.stopPublisher != nil {
		a.stopPublisher()
		a.publisherDone.Wait()
	}
	if a.counters != nil {
		s := a.counters.Summary()
		logger.Info("Metrics summary",
			"predictions", s.Predictions,
			"fallbacks", s.Fallbacks,
			"artifact_loads", s.ArtifactLoads,
			"batch_runs", s.BatchRuns,
			"batch_items", s.BatchItems,
			"recoveries", s.Recoveries,
		)
		metrics.Init()
	}
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

func (a *app) encode(v any) error {
	if a.format == formatYAML {
		enc := yaml.NewEncoder(a.out)
		defer enc.Close()
		return enc.Encode(v)
	}
	e := json.NewEncoder(a.out)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
