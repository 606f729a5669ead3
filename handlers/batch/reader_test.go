package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/dataset"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOfSize(n int) dataset.Index {
	index := make(dataset.Index, n)
	for i := range index {
		index[i] = dataset.Record{Path: fmt.Sprintf("/data/img_%03d.jpg", i), Label: i % 2}
	}
	return index
}

func TestChunksReconstructIndex(t *testing.T) {
	tests := []struct {
		name      string
		indexLen  int
		chunkSize int
	}{
		{name: "chunk size one", indexLen: 5, chunkSize: 1},
		{name: "even split", indexLen: 6, chunkSize: 2},
		{name: "ragged tail", indexLen: 7, chunkSize: 3},
		{name: "chunk larger than index", indexLen: 3, chunkSize: 100},
		{name: "single record", indexLen: 1, chunkSize: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := indexOfSize(tt.indexLen)
			reader, err := NewReader(tt.chunkSize)
			require.NoError(t, err)

			var reconstructed dataset.Index
			it := reader.Chunks(index)
			offset := 0
			for {
				chunk, ok := it.Next()
				if !ok {
					break
				}
				assert.Equal(t, offset, chunk.Offset)
				assert.LessOrEqual(t, len(chunk.Records), tt.chunkSize)
				reconstructed = append(reconstructed, chunk.Records...)
				offset += len(chunk.Records)
			}
			assert.Equal(t, index, reconstructed)
		})
	}
}

func TestChunksRestartOnReinvocation(t *testing.T) {
	index := indexOfSize(4)
	reader, err := NewReader(2)
	require.NoError(t, err)

	first, ok := reader.Chunks(index).Next()
	require.True(t, ok)
	second, ok := reader.Chunks(index).Next()
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestNewReaderRejectsBadChunkSize(t *testing.T) {
	_, err := NewReader(0)
	assert.Error(t, err)
	_, err = NewReader(-3)
	assert.Error(t, err)
}

func TestChunkReadPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	index := make(dataset.Index, 3)
	for i := range index {
		path := filepath.Join(dir, fmt.Sprintf("img_%d.jpg", i))
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("payload-%d", i)), 0o644))
		index[i] = dataset.Record{Path: path, Label: 0}
	}

	reader, err := NewReader(10)
	require.NoError(t, err)
	chunk, ok := reader.Chunks(index).Next()
	require.True(t, ok)

	payloads, err := chunk.Read()
	require.NoError(t, err)
	require.Len(t, payloads, 3)
	for i, payload := range payloads {
		assert.Equal(t, fmt.Sprintf("payload-%d", i), string(payload))
	}
}

func TestChunkReadMissingFileFailsWithPath(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.jpg")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0o644))
	missing := filepath.Join(dir, "missing.jpg")

	index := dataset.Index{
		{Path: present, Label: 0},
		{Path: missing, Label: 1},
	}

	reader, err := NewReader(2)
	require.NoError(t, err)
	chunk, ok := reader.Chunks(index).Next()
	require.True(t, ok)

	payloads, err := chunk.Read()
	require.Error(t, err)
	assert.Nil(t, payloads)

	var ioFailure *errors.IOFailure
	require.ErrorAs(t, err, &ioFailure)
	assert.Equal(t, missing, ioFailure.Path)
	assert.Contains(t, ioFailure.Error(), missing)
}
