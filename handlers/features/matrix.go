package features

// Matrix is the row-aligned feature matrix: row i holds the feature vector
// of dataset index entry i. Rows share one contiguous backing block.
type Matrix struct {
	rows  [][]float32
	width int
}

func newMatrix(rowCount, width int) *Matrix {
	rows := make([][]float32, rowCount)

	// Preallocate one big contiguous slice
	block := make([]float32, rowCount*width)
	for i := 0; i < rowCount; i++ {
		rows[i] = block[i*width : (i+1)*width]
	}
	return &Matrix{rows: rows, width: width}
}

func (m *Matrix) Rows() int {
	return len(m.rows)
}

func (m *Matrix) Width() int {
	return m.width
}

func (m *Matrix) Row(i int) []float32 {
	return m.rows[i]
}

func (m *Matrix) Data() [][]float32 {
	return m.rows
}
