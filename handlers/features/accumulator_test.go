package features

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
)

func TestAccumulatorCollectsChunksInOrder(t *testing.T) {
	accumulator := NewAccumulator(5)

	assert.NoError(t, accumulator.Append([][]float32{{1, 2}, {3, 4}}))
	assert.NoError(t, accumulator.Append([][]float32{{5, 6}, {7, 8}}))
	assert.NoError(t, accumulator.Append([][]float32{{9, 10}}))

	matrix, err := accumulator.Matrix()
	assert.NoError(t, err)
	assert.Equal(t, 5, matrix.Rows())
	assert.Equal(t, 2, matrix.Width())
	assert.Equal(t, []float32{1, 2}, matrix.Row(0))
	assert.Equal(t, []float32{9, 10}, matrix.Row(4))
}

func TestAccumulatorRejectsOverflow(t *testing.T) {
	accumulator := NewAccumulator(2)

	assert.NoError(t, accumulator.Append([][]float32{{1}, {2}}))
	err := accumulator.Append([][]float32{{3}})
	assert.Error(t, err)
	var alignmentErr *errors.AlignmentError
	assert.ErrorAs(t, err, &alignmentErr)
}

func TestAccumulatorRejectsWidthMismatch(t *testing.T) {
	accumulator := NewAccumulator(3)

	assert.NoError(t, accumulator.Append([][]float32{{1, 2}}))
	err := accumulator.Append([][]float32{{3, 4, 5}})
	assert.Error(t, err)
	var alignmentErr *errors.AlignmentError
	assert.ErrorAs(t, err, &alignmentErr)
}

func TestAccumulatorMatrixBeforeComplete(t *testing.T) {
	accumulator := NewAccumulator(3)
	assert.NoError(t, accumulator.Append([][]float32{{1}, {2}}))

	matrix, err := accumulator.Matrix()
	assert.Nil(t, matrix)
	var alignmentErr *errors.AlignmentError
	assert.ErrorAs(t, err, &alignmentErr)
}

func TestMatrixRowsShareContiguousBlock(t *testing.T) {
	matrix := newMatrix(3, 4)
	matrix.Row(0)[0] = 1
	matrix.Row(2)[3] = 2

	data := matrix.Data()
	assert.Len(t, data, 3)
	assert.Equal(t, float32(1), data[0][0])
	assert.Equal(t, float32(2), data[2][3])
}
