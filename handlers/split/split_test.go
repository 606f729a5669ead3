package split

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
)

func buildRows(n int) ([][]float32, [][]int) {
	x := make([][]float32, n)
	y := make([][]int, n)
	for i := 0; i < n; i++ {
		x[i] = []float32{float32(i)}
		y[i] = []int{i, i}
	}
	return x, y
}

func TestSplitSizesAndAlignment(t *testing.T) {
	x, y := buildRows(8)

	result, err := Split(x, y, 42, 0.75)
	assert.NoError(t, err)
	assert.Len(t, result.XTrain, 6)
	assert.Len(t, result.XTest, 2)
	assert.Len(t, result.YTrain, 6)
	assert.Len(t, result.YTest, 2)

	// every feature row must still carry its own label row
	for i, row := range result.XTrain {
		assert.Equal(t, int(row[0]), result.YTrain[i][0])
	}
	for i, row := range result.XTest {
		assert.Equal(t, int(row[0]), result.YTest[i][0])
	}
}

func TestSplitPartitionsAreDisjointAndExhaustive(t *testing.T) {
	x, y := buildRows(20)

	result, err := Split(x, y, 7, 0.75)
	assert.NoError(t, err)

	seen := make(map[int]int)
	for _, row := range result.XTrain {
		seen[int(row[0])]++
	}
	for _, row := range result.XTest {
		seen[int(row[0])]++
	}
	assert.Len(t, seen, 20)
	for rowIdx, count := range seen {
		assert.Equalf(t, 1, count, "row %d appears %d times", rowIdx, count)
	}
}

func TestSplitIsReproducibleForSameSeed(t *testing.T) {
	x, y := buildRows(50)

	first, err := Split(x, y, 1234, 0.8)
	assert.NoError(t, err)
	second, err := Split(x, y, 1234, 0.8)
	assert.NoError(t, err)

	assert.Equal(t, first.XTrain, second.XTrain)
	assert.Equal(t, first.XTest, second.XTest)
	assert.Equal(t, first.YTrain, second.YTrain)
	assert.Equal(t, first.YTest, second.YTest)
}

func TestSplitDiffersAcrossSeeds(t *testing.T) {
	x, y := buildRows(50)

	first, err := Split(x, y, 1, 0.8)
	assert.NoError(t, err)
	second, err := Split(x, y, 2, 0.8)
	assert.NoError(t, err)

	assert.NotEqual(t, first.XTrain, second.XTrain)
}

func TestSplitRoundsTrainSize(t *testing.T) {
	x, y := buildRows(5)

	// 5 * 0.75 = 3.75 rounds up to 4
	result, err := Split(x, y, 42, 0.75)
	assert.NoError(t, err)
	assert.Len(t, result.XTrain, 4)
	assert.Len(t, result.XTest, 1)
}

func TestSplitKeepsBothPartitionsNonEmpty(t *testing.T) {
	x, y := buildRows(5)

	// 5 * 0.95 rounds to 5; the cut is clamped so a test row remains
	result, err := Split(x, y, 42, 0.95)
	assert.NoError(t, err)
	assert.Len(t, result.XTrain, 4)
	assert.Len(t, result.XTest, 1)

	// 5 * 0.05 rounds to 0; the cut is clamped so a train row remains
	result, err = Split(x, y, 42, 0.05)
	assert.NoError(t, err)
	assert.Len(t, result.XTrain, 1)
	assert.Len(t, result.XTest, 4)
}

func TestSplitRejectsMisalignedRows(t *testing.T) {
	x, _ := buildRows(4)
	_, y := buildRows(3)

	result, err := Split(x, y, 42, 0.75)
	assert.Nil(t, result)
	var alignmentErr *errors.AlignmentError
	assert.ErrorAs(t, err, &alignmentErr)
}

func TestSplitRejectsBadFraction(t *testing.T) {
	x, y := buildRows(4)

	for _, fraction := range []float64{0, 1, -0.5, 1.5} {
		result, err := Split(x, y, 42, fraction)
		assert.Nil(t, result)
		assert.Error(t, err)
	}
}
