package split

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
)

// Result holds the shuffled train/test partitions. Row i of XTrain is still
// aligned with row i of YTrain, same for the test side.
type Result struct {
	XTrain [][]float32
	XTest  [][]float32
	YTrain [][]int
	YTest  [][]int
}

// Split shuffles the aligned feature and label rows with a seeded permutation
// and cuts them at trainFraction. The same seed over the same rows always
// produces the same partitions.
func Split(x [][]float32, y [][]int, seed int64, trainFraction float64) (*Result, error) {
	if len(x) != len(y) {
		return nil, &errors.AlignmentError{
			ErrorMsg: fmt.Sprintf("split called with %d feature rows and %d label rows", len(x), len(y)),
		}
	}
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, fmt.Errorf("train fraction must be in (0, 1), got %v", trainFraction)
	}

	n := len(x)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	// round, then clamp so neither partition ends up empty
	trainSize := int(math.Round(float64(n) * trainFraction))
	if trainSize >= n {
		trainSize = n - 1
	}
	if trainSize < 1 {
		trainSize = 1
	}

	result := &Result{
		XTrain: make([][]float32, 0, trainSize),
		XTest:  make([][]float32, 0, n-trainSize),
		YTrain: make([][]int, 0, trainSize),
		YTest:  make([][]int, 0, n-trainSize),
	}
	for i, rowIdx := range perm {
		if i < trainSize {
			result.XTrain = append(result.XTrain, x[rowIdx])
			result.YTrain = append(result.YTrain, y[rowIdx])
		} else {
			result.XTest = append(result.XTest, x[rowIdx])
			result.YTest = append(result.YTest, y[rowIdx])
		}
	}
	logger.Info(fmt.Sprintf("Split %d rows into %d train / %d test with seed %d", n, len(result.XTrain), len(result.XTest), seed))
	return result, nil
}
