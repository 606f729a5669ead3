package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/external/featurizer"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/external/trainer"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/dag"
)

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0x01}

const (
	negativeMarker = byte('n')
	positiveMarker = byte('p')
)

// stubFeaturizer derives the vector from a class marker byte appended after
// the JPEG header, so predictions are fully determined by the file content.
type stubFeaturizer struct{}

func (s *stubFeaturizer) Featurize(ctx context.Context, batch [][]byte) ([][]float32, error) {
	vectors := make([][]float32, len(batch))
	for i, payload := range batch {
		if payload[len(payload)-1] == positiveMarker {
			vectors[i] = []float32{0, 1}
		} else {
			vectors[i] = []float32{1, 0}
		}
	}
	return vectors, nil
}

// stubTrainer echoes the feature vector back as the probability row, which
// makes the stub featurizer a perfect classifier.
type stubTrainer struct {
	fitCalls  int
	trainRows int
}

func (s *stubTrainer) Fit(ctx context.Context, features [][]float32, labels [][]int, conf config.FitConfig) (string, error) {
	s.fitCalls++
	s.trainRows = len(features)
	return "model-ref-1", nil
}

func (s *stubTrainer) Predict(ctx context.Context, modelRef string, features [][]float32) ([][]float32, error) {
	probabilities := make([][]float32, len(features))
	for i, row := range features {
		probabilities[i] = []float32{row[0], row[1]}
	}
	return probabilities, nil
}

func writeClassDir(t *testing.T, rootDir, classDir string, marker byte, count int) {
	t.Helper()
	dir := filepath.Join(rootDir, classDir)
	assert.NoError(t, os.MkdirAll(dir, 0o755))
	for i := 0; i < count; i++ {
		payload := append(append([]byte{}, jpegHeader...), marker)
		path := filepath.Join(dir, fmt.Sprintf("img_%03d.jpg", i))
		assert.NoError(t, os.WriteFile(path, payload, 0o644))
	}
}

func setupPipeline(t *testing.T, pipelineID string, conf config.Config) *PipelineHandler {
	t.Helper()
	config.SetPipelineConfigMap(&config.PipelineConfig{
		ConfigMap: map[string]config.Config{pipelineID: conf},
	})
	provider := &ComponentProviderHandler{componentMap: make(map[string]dag.AbstractComponent)}
	provider.RegisterComponent(config.GetPipelineConfigMap())
	return newPipelineHandler(provider, 1<<20, 600)
}

func demoConfig(rootDir string) config.Config {
	return config.Config{
		DAGExecutionConfig: config.DAGExecutionConfig{
			ComponentDependency: DefaultComponentDependency(),
		},
		DatasetConfig: config.DatasetConfig{
			RootDir:     rootDir,
			NegativeDir: "negative",
			PositiveDir: "positive",
			Pattern:     "*.jpg",
			MIMEType:    "image/jpeg",
			SampleCap:   100,
		},
		BatchConfig: config.BatchConfig{ChunkSize: 3},
		SplitConfig: config.SplitConfig{Seed: 42, TrainFraction: 0.5},
		FitConfig:   config.FitConfig{Epochs: 5, BatchSize: 4, LearningRate: 0.001, Optimizer: "rmsprop"},
	}
}

func TestRunPipelineEndToEnd(t *testing.T) {
	rootDir := t.TempDir()
	writeClassDir(t, rootDir, "negative", negativeMarker, 8)
	writeClassDir(t, rootDir, "positive", positiveMarker, 8)

	featurizer.SetMockInstance(&stubFeaturizer{})
	trainerStub := &stubTrainer{}
	trainer.SetMockInstance(trainerStub)

	handler := setupPipeline(t, "demo", demoConfig(rootDir))
	result, err := handler.RunPipeline(context.Background(), "demo")
	assert.NoError(t, err)
	assert.Equal(t, "model-ref-1", result.ModelRef)
	assert.Equal(t, 16, result.TotalRows)
	assert.Equal(t, 8, result.TrainRows)
	assert.Equal(t, 8, result.TestRows)
	assert.Equal(t, 2, result.FeatureWidth)
	assert.Equal(t, 1, trainerStub.fitCalls)
	assert.Equal(t, 8, trainerStub.trainRows)

	// the stubs form a perfect classifier, so the held-out metrics are exact
	assert.InDelta(t, 1.0, result.Metrics.Accuracy, 1e-9)
	assert.InDelta(t, 1.0, result.Metrics.Precision, 1e-9)
	assert.InDelta(t, 1.0, result.Metrics.Recall, 1e-9)
	assert.InDelta(t, 1.0, result.Metrics.AUC, 1e-9)
}

func TestRunPipelineIsReproducible(t *testing.T) {
	rootDir := t.TempDir()
	writeClassDir(t, rootDir, "negative", negativeMarker, 8)
	writeClassDir(t, rootDir, "positive", positiveMarker, 8)

	featurizer.SetMockInstance(&stubFeaturizer{})
	trainer.SetMockInstance(&stubTrainer{})

	handler := setupPipeline(t, "demo", demoConfig(rootDir))
	first, err := handler.RunPipeline(context.Background(), "demo")
	assert.NoError(t, err)
	second, err := handler.RunPipeline(context.Background(), "demo")
	assert.NoError(t, err)
	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.TrainRows, second.TrainRows)
}

func TestRunPipelineMissingDataset(t *testing.T) {
	rootDir := t.TempDir()
	writeClassDir(t, rootDir, "positive", positiveMarker, 4)
	// negative dir left empty

	featurizer.SetMockInstance(&stubFeaturizer{})
	trainer.SetMockInstance(&stubTrainer{})

	handler := setupPipeline(t, "demo", demoConfig(rootDir))
	result, err := handler.RunPipeline(context.Background(), "demo")
	assert.Nil(t, result)
	var notFoundErr *errors.DataNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestRunPipelineUnknownID(t *testing.T) {
	handler := setupPipeline(t, "demo", demoConfig(t.TempDir()))
	result, err := handler.RunPipeline(context.Background(), "missing")
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestScoreRequiresFinishedRun(t *testing.T) {
	handler := setupPipeline(t, "demo", demoConfig(t.TempDir()))
	result, err := handler.Score(context.Background(), "demo", [][]byte{{1}})
	assert.Nil(t, result)
	var notFoundErr *errors.DataNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestScoreAfterRun(t *testing.T) {
	rootDir := t.TempDir()
	writeClassDir(t, rootDir, "negative", negativeMarker, 8)
	writeClassDir(t, rootDir, "positive", positiveMarker, 8)

	featurizer.SetMockInstance(&stubFeaturizer{})
	trainer.SetMockInstance(&stubTrainer{})

	handler := setupPipeline(t, "demo", demoConfig(rootDir))
	_, err := handler.RunPipeline(context.Background(), "demo")
	assert.NoError(t, err)

	payload := append(append([]byte{}, jpegHeader...), positiveMarker)
	probabilities, err := handler.Score(context.Background(), "demo", [][]byte{payload})
	assert.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 1}}, probabilities)
}
