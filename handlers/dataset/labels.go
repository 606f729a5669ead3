package dataset

// Labels extracts the label vector from the index. Position i of the result
// is the label of Index[i].
func Labels(index Index) []int {
	labels := make([]int, len(index))
	for i, record := range index {
		labels[i] = record.Label
	}
	return labels
}

// OneHot encodes the label vector: label 0 -> [1,0], label 1 -> [0,1].
// Column 1 is the positive class; evaluation scores probability column 1
// against it, so the two conventions cannot drift apart independently.
func OneHot(labels []int) [][]int {
	encoded := make([][]int, len(labels))
	block := make([]int, len(labels)*NumClasses)
	for i, label := range labels {
		row := block[i*NumClasses : (i+1)*NumClasses]
		row[label] = 1
		encoded[i] = row
	}
	return encoded
}
