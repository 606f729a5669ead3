package trainer

// FitRequest carries the full training split plus hyper parameters. Rows of
// Features and Labels are aligned by index.
type FitRequest struct {
	Features     [][]float32 `json:"features"`
	Labels       [][]int     `json:"labels"`
	Epochs       int         `json:"epochs"`
	BatchSize    int         `json:"batch_size"`
	LearningRate float64     `json:"learning_rate"`
	Optimizer    string      `json:"optimizer"`
}

type FitResponse struct {
	ModelRef string `json:"model_ref"`
	Error    string `json:"error,omitempty"`
}

type PredictRequest struct {
	ModelRef string      `json:"model_ref"`
	Features [][]float32 `json:"features"`
}

// PredictResponse carries one probability row per feature row, ordered by
// class index.
type PredictResponse struct {
	Probabilities [][]float32 `json:"probabilities"`
	Error         string      `json:"error,omitempty"`
}
