package batch

import (
	"fmt"
	"os"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/dataset"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
)

// Reader splits a dataset index into fixed-size contiguous chunks and reads
// one chunk's bytes at a time, so peak memory is bounded by chunk size
// regardless of corpus size.
type Reader struct {
	chunkSize int
}

func NewReader(chunkSize int) (*Reader, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be >= 1, got %d", chunkSize)
	}
	return &Reader{chunkSize: chunkSize}, nil
}

// Chunk is a contiguous slice of the index. Offset is the index position of
// the chunk's first record.
type Chunk struct {
	Offset  int
	Records dataset.Index
}

// Read loads the raw bytes of every record in the chunk, in index order.
// The first unreadable file aborts the whole run: skipping would silently
// shift every following feature row against its label.
func (c *Chunk) Read() ([][]byte, error) {
	payloads := make([][]byte, len(c.Records))
	for i, record := range c.Records {
		data, err := os.ReadFile(record.Path)
		if err != nil {
			return nil, &errors.IOFailure{
				Path:     record.Path,
				ErrorMsg: fmt.Sprintf("failed to read %s: %v", record.Path, err),
			}
		}
		payloads[i] = data
	}
	return payloads, nil
}

// ChunkIterator walks the index front to back. A fresh iterator from Chunks
// restarts from the beginning.
type ChunkIterator struct {
	index     dataset.Index
	chunkSize int
	offset    int
}

func (r *Reader) Chunks(index dataset.Index) *ChunkIterator {
	return &ChunkIterator{index: index, chunkSize: r.chunkSize}
}

// Next returns the next chunk, or false when the index is exhausted.
func (it *ChunkIterator) Next() (*Chunk, bool) {
	if it.offset >= len(it.index) {
		return nil, false
	}
	end := it.offset + it.chunkSize
	if end > len(it.index) {
		end = len(it.index)
	}
	chunk := &Chunk{
		Offset:  it.offset,
		Records: it.index[it.offset:end],
	}
	it.offset = end
	return chunk, true
}
