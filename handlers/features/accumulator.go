package features

import (
	"fmt"

	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
)

// Accumulator collects per-chunk featurizer output into the final matrix.
// Chunks must arrive in index order; the accumulator only appends, it never
// reorders, drops or duplicates rows.
type Accumulator struct {
	rowCount int
	matrix   *Matrix
	next     int
}

func NewAccumulator(rowCount int) *Accumulator {
	return &Accumulator{rowCount: rowCount}
}

// Append adds one chunk's vectors. The vector width is fixed by the first
// chunk; any later deviation means the featurizer broke its contract.
func (a *Accumulator) Append(vectors [][]float32) error {
	if a.next+len(vectors) > a.rowCount {
		return &errors.AlignmentError{
			ErrorMsg: fmt.Sprintf("accumulator overflow: %d rows appended into a %d-row matrix", a.next+len(vectors), a.rowCount),
		}
	}
	if a.matrix == nil {
		if len(vectors) == 0 {
			return nil
		}
		a.matrix = newMatrix(a.rowCount, len(vectors[0]))
	}
	for _, vector := range vectors {
		if len(vector) != a.matrix.width {
			return &errors.AlignmentError{
				ErrorMsg: fmt.Sprintf("feature vector width %d at row %d, expected %d", len(vector), a.next, a.matrix.width),
			}
		}
		copy(a.matrix.rows[a.next], vector)
		a.next++
	}
	return nil
}

// Matrix returns the finished matrix. Calling it before every row has
// arrived is an alignment violation, not a partial result.
func (a *Accumulator) Matrix() (*Matrix, error) {
	if a.matrix == nil || a.next != a.rowCount {
		return nil, &errors.AlignmentError{
			ErrorMsg: fmt.Sprintf("feature matrix incomplete: %d of %d rows accumulated", a.next, a.rowCount),
		}
	}
	return a.matrix, nil
}
