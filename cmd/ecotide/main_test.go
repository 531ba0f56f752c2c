package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rajasatyajit/EcoTide/internal/errors"
	"github.com/rajasatyajit/EcoTide/internal/models"
	"github.com/rajasatyajit/EcoTide/internal/pipeline"
	"github.com/rajasatyajit/EcoTide/internal/stats"
)

// isolate points every setting at test-local values
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{"ECOTIDE_CONFIG", "REDIS_URL", "LOG_LEVEL", "LOG_FORMAT", "BATCH_WORKER_COUNT", "BATCH_RATE_LIMIT", "ECOTIDE_MODEL_ENABLED", "METRICS_ENABLED"} {
		t.Setenv(k, "")
	}
	t.Setenv("ECOTIDE_ARTIFACT_PATH", filepath.Join(dir, "model.json"))
	t.Setenv("ECOTIDE_RANDOM_SEED", "1")
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLIWithLogs(t, args...)
	return out, err
}

func runCLIWithLogs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	err := newApp(&out, &logs).command().Run(context.Background(), append([]string{"ecotide"}, args...))
	return out.String(), logs.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "categories")
	require.NoError(t, err)
	var cats []string
	require.NoError(t, json.Unmarshal([]byte(out), &cats))
	assert.Len(t, cats, 10)
	assert.Equal(t, "electronics", cats[0])

	out, err = runCLI(t, "--format", "yaml", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "- electronics\n")
}

func TestScoreCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "score", "--id", "B01", "Solar", "Garden", "Lights")
	require.NoError(t, err)
	var r models.ScoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, models.GradeA, r.Grade)
	assert.Equal(t, "1.1 kg", r.CO2Impact)

	_, err = runCLI(t, "score")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestScoreCommandFromHTML(t *testing.T) {
	dir := isolate(t)
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(`<html><body>
		<span id="productTitle">Toxic Paint Remover - Harmful Chemical Stripper</span>
		<input id="ASIN" value="B0TOXIC"></body></html>`), 0o600))

	out, err := runCLI(t, "score", "--html", page)
	require.NoError(t, err)
	var r models.ScoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, models.GradeE, r.Grade)
}

func TestTrainThenScoreWithModel(t *testing.T) {
	dir := isolate(t)
	artifact := filepath.Join(dir, "model.json")

	out, err := runCLI(t, "train", "--out", artifact, "--max-features", "200")
	require.NoError(t, err)
	assert.Contains(t, out, `"model_type": "nearest_centroid"`)
	_, err = os.Stat(artifact)
	require.NoError(t, err)

	out, err = runCLI(t, "stats")
	require.NoError(t, err)
	var s models.Statistics
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, stats.ModelTypeML, s.ModelType)

	out, err = runCLI(t, "score", "Organic Bamboo Toothbrush")
	require.NoError(t, err)
	var r models.ScoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.True(t, r.Grade.Valid())
}

func TestTrainFromCSV(t *testing.T) {
	dir := isolate(t)
	data := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(data, []byte("product_title,sustainability_grade\nSolar Lights,A\nPlastic Cups,E\n"), 0o600))

	out, err := runCLI(t, "--format", "yaml", "train", "--data", data, "--out", filepath.Join(dir, "csv-model.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "training_samples: 2")
}

func TestBatchAndSharedStats(t *testing.T) {
	dir := isolate(t)
	srv, err := miniredis.Run()
	require.NoError(t, err)
	defer srv.Close()
	t.Setenv("REDIS_URL", "redis://"+srv.Addr())

	input := filepath.Join(dir, "titles.txt")
	require.NoError(t, os.WriteFile(input, []byte(strings.Join([]string{
		"Solar Garden Lights\tB1",
		"Disposable Plastic Cups - Single Use Party Supplies\tB2",
		"Standard Cotton T-Shirt - Regular Fit",
	}, "\n")), 0o600))

	out, err := runCLI(t, "batch", "--file", input)
	require.NoError(t, err)
	var results []pipeline.Scored
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "B1", results[0].Product.Identifier)
	assert.Equal(t, models.GradeA, results[0].Result.Grade)
	assert.Equal(t, models.GradeD, results[1].Result.Grade)
	assert.Equal(t, models.GradeC, results[2].Result.Grade)

	out, err = runCLI(t, "stats")
	require.NoError(t, err)
	var s models.Statistics
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, int64(3), s.TotalPredictions)
	assert.Equal(t, int64(1), s.GradeDistribution[models.GradeA])
	assert.Equal(t, stats.ModelTypeRules, s.ModelType)
}

func TestSuggestCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "suggest", "--category", "books", "Plastic", "Binder")
	require.NoError(t, err)
	var sugg []models.Suggestion
	require.NoError(t, json.Unmarshal([]byte(out), &sugg))
	require.Len(t, sugg, 3)
	assert.Equal(t, models.CategoryBooks, sugg[0].Category)
}

func TestUnsupportedFormat(t *testing.T) {
	isolate(t)
	_, err := runCLI(t, "--format", "xml", "categories")
	assert.Error(t, err)
}

func TestMetricsSummaryFollowsConfig(t *testing.T) {
	isolate(t)

	_, logs, err := runCLIWithLogs(t, "score", "Solar", "Garden", "Lights")
	require.NoError(t, err)
	assert.Contains(t, logs, `"msg":"Metrics summary"`)
	assert.Contains(t, logs, `"rule_based:A":1`)

	t.Setenv("METRICS_ENABLED", "false")
	_, logs, err = runCLIWithLogs(t, "score", "Solar", "Garden", "Lights")
	require.NoError(t, err)
	assert.NotContains(t, logs, "Metrics summary")
}
