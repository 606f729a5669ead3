package trainer

import (
	"context"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
)

// Trainer fits a classification head on a feature matrix and scores feature
// rows against a previously fitted model.
type Trainer interface {
	// Fit trains on aligned features and one-hot labels and returns an opaque
	// model reference usable with Predict.
	Fit(ctx context.Context, features [][]float32, labels [][]int, conf config.FitConfig) (string, error)
	// Predict returns one probability row per feature row, ordered by class
	// index.
	Predict(ctx context.Context, modelRef string, features [][]float32) ([][]float32, error)
}
