package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	apperrors "github.com/rajasatyajit/EcoTide/internal/errors"
	"github.com/rajasatyajit/EcoTide/internal/extract"
	"github.com/rajasatyajit/EcoTide/internal/logger"
	"github.com/rajasatyajit/EcoTide/internal/model"
	"github.com/rajasatyajit/EcoTide/internal/models"
	"github.com/rajasatyajit/EcoTide/internal/pipeline"
	"github.com/rajasatyajit/EcoTide/internal/stats"
)

func (a *app) scoreCmd() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "Score a single product title",
		ArgsUsage: "TITLE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Marketplace identifier (ASIN)"},
			&cli.StringFlag{Name: "html", Usage: "Extract title and identifier from a saved product page"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p := models.Product{
				Title:      strings.TrimSpace(strings.Join(cmd.Args().Slice(), " ")),
				Identifier: cmd.String("id"),
			}

			if path := cmd.String("html"); path != "" {
				page, err := extractFile(path)
				if err != nil {
					return err
				}
				if p.Title == "" {
					p.Title = page.Title
				}
				if p.Identifier == "" {
					p.Identifier = page.Identifier
				}
			}

			if p.Title == "" {
				return fmt.Errorf("%w: product title is required", apperrors.ErrInvalidInput)
			}
			return a.encode(a.engine.ScoreProduct(p))
		},
	}
}

func extractFile(path string) (models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Product{}, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	p, err := extract.FromHTML(f, "")
	if err != nil {
		return models.Product{}, fmt.Errorf("extract %s: %w", path, err)
	}
	return p, nil
}

func (a *app) batchCmd() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Score one title per line (optionally TAB identifier) concurrently",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "Input file, - for stdin", Value: "-"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var r io.Reader = os.Stdin
			if path := cmd.String("file"); path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				r = f
			}

			items, err := pipeline.ReadItems(r)
			if err != nil {
				return err
			}

			results, err := pipeline.New(a.engine, a.cfg.Batch).Run(ctx, items)
			if err != nil {
				return fmt.Errorf("batch: %w", err)
			}
			return a.encode(results)
		},
	}
}

func (a *app) trainCmd() *cli.Command {
	return &cli.Command{
		Name:  "train",
		Usage: "Fit a classifier artifact from labelled titles",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Usage: "CSV of product_title,sustainability_grade (default: built-in seed corpus)"},
			&cli.StringFlag{Name: "out", Usage: "Artifact output path (default: configured artifact path)"},
			&cli.IntFlag{Name: "max-features", Usage: "Vocabulary size cap, 0 for unlimited", Value: 1000},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			samples := model.SeedSamples()
			if path := cmd.String("data"); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open training data: %w", err)
				}
				defer f.Close()
				if samples, err = model.ReadSamplesCSV(f); err != nil {
					return fmt.Errorf("training data %s: %w", path, err)
				}
			}

			opts := model.DefaultTrainOptions()
			opts.MaxFeatures = int(cmd.Int("max-features"))

			artifact, err := model.Train(samples, opts)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}

			out := cmd.String("out")
			if out == "" {
				out = a.cfg.Scoring.ArtifactPath
			}
			if err := model.SaveArtifact(out, artifact); err != nil {
				return err
			}
			logger.Info("Artifact saved",
				"path", out,
				"samples", artifact.Metadata.TrainingSamples,
				"features", artifact.Vectorizer.Dims(),
				"accuracy", artifact.Metadata.Accuracy,
			)
			return a.encode(artifact.Metadata)
		},
	}
}

func (a *app) categoriesCmd() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List supported product categories",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.encode(a.engine.Categories())
		},
	}
}

func (a *app) statsCmd() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show scoring statistics (aggregated across instances when Redis is configured)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if a.redis == nil {
				return a.encode(a.engine.Statistics())
			}
			s, err := stats.Aggregate(ctx, a.redis, a.cfg.Redis.KeyPrefix)
			if err != nil {
				return fmt.Errorf("aggregate stats: %w", err)
			}
			return a.encode(s)
		},
	}
}

func (a *app) suggestCmd() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Suggest more sustainable alternatives",
		ArgsUsage: "TITLE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "Category to suggest for (default: detected from title)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			title := strings.Join(cmd.Args().Slice(), " ")
			return a.encode(a.engine.Suggestions(title, models.Category(cmd.String("category"))))
		},
	}
}
