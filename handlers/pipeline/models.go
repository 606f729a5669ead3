package pipeline

import (
	"context"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/dataset"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/evaluation"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/features"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/split"
)

// PipelineRequest is the shared state every component of a run mutates in
// turn. Components execute strictly one at a time, so no field needs
// synchronization; a component that hits an error records it in Err and every
// later component becomes a no-op.
type PipelineRequest struct {
	Ctx        context.Context
	PipelineID string
	Conf       *config.Config

	Index  dataset.Index
	Labels []int
	OneHot [][]int
	Matrix *features.Matrix
	Split  *split.Result

	Err error
}

// RunResult is the outcome of one full pipeline run over the held-out split.
type RunResult struct {
	PipelineID   string                   `json:"pipeline_id"`
	ModelRef     string                   `json:"model_ref"`
	FeatureWidth int                      `json:"feature_width"`
	TotalRows    int                      `json:"total_rows"`
	TrainRows    int                      `json:"train_rows"`
	TestRows     int                      `json:"test_rows"`
	Metrics      *evaluation.MetricReport `json:"metrics"`
	DurationMs   int64                    `json:"duration_ms"`
}

// Bundle is what a finished run leaves behind for scoring: the trained model
// reference plus the feature width it expects.
type Bundle struct {
	ModelRef     string `json:"model_ref"`
	FeatureWidth int    `json:"feature_width"`
}
