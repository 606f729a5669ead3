package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsAlignWithIndex(t *testing.T) {
	index := Index{
		{Path: "/data/cats/a.jpg", Label: LabelNegative},
		{Path: "/data/cats/b.jpg", Label: LabelNegative},
		{Path: "/data/dogs/a.jpg", Label: LabelPositive},
	}

	labels := Labels(index)
	require.Len(t, labels, index.Len())
	for i, record := range index {
		assert.Equal(t, record.Label, labels[i])
	}
}

func TestOneHotEncoding(t *testing.T) {
	labels := []int{0, 1, 1, 0}
	encoded := OneHot(labels)

	require.Len(t, encoded, len(labels))
	assert.Equal(t, []int{1, 0}, encoded[0])
	assert.Equal(t, []int{0, 1}, encoded[1])
	assert.Equal(t, []int{0, 1}, encoded[2])
	assert.Equal(t, []int{1, 0}, encoded[3])

	for i, row := range encoded {
		require.Len(t, row, NumClasses)
		assert.Equal(t, 1, row[labels[i]])
		assert.Equal(t, 1, row[0]+row[1])
	}
}

func TestOneHotEmpty(t *testing.T) {
	assert.Empty(t, OneHot(nil))
}
