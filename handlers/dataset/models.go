package dataset

const (
	LabelNegative = 0
	LabelPositive = 1

	// NumClasses is fixed: the pipeline is a binary classifier.
	NumClasses = 2
)

// Record is one scanned file with its class label. Records are immutable
// once the index is built.
type Record struct {
	Path  string
	Label int
}

// Index is the ordered file list the whole pipeline is aligned against.
// Row i of the feature matrix and position i of the label vector refer to
// Index[i]; the order must never change after construction.
type Index []Record

func (idx Index) Len() int {
	return len(idx)
}

func (idx Index) Paths() []string {
	paths := make([]string, len(idx))
	for i, record := range idx {
		paths[i] = record.Path
	}
	return paths
}
