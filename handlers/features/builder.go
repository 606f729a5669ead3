package features

import (
	"context"
	"fmt"
	"time"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/batch"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/dataset"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/metrics"
)

// Builder walks the index chunk by chunk, featurizes each chunk and
// accumulates the rows into the matrix. Only one chunk's payloads are
// resident at a time, and the featurizer sees at most one in-flight call.
type Builder struct {
	reader     *batch.Reader
	featurizer Featurizer
	cache      *VectorCache // nil disables caching
}

func NewBuilder(reader *batch.Reader, featurizer Featurizer, cache *VectorCache) *Builder {
	return &Builder{reader: reader, featurizer: featurizer, cache: cache}
}

// Build produces the feature matrix for the index. Post-condition: the
// matrix has exactly index.Len() rows and row i belongs to index[i].
func (b *Builder) Build(ctx context.Context, index dataset.Index) (*Matrix, error) {
	startTime := time.Now()
	metricTags := []string{"component-name", "feature_builder"}

	accumulator := NewAccumulator(index.Len())
	it := b.reader.Chunks(index)
	for {
		chunk, ok := it.Next()
		if !ok {
			break
		}
		rows, err := b.featurizeChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if err := accumulator.Append(rows); err != nil {
			return nil, err
		}
	}

	matrix, err := accumulator.Matrix()
	if err != nil {
		return nil, err
	}
	metrics.Count("transferflow.feature.rows.total", int64(matrix.Rows()), metricTags)
	metrics.Timing("transferflow.feature.build.latency", time.Since(startTime), metricTags)
	return matrix, nil
}

// featurizeChunk resolves each row of the chunk from the cache where
// possible and featurizes the rest in one batched call, merging fresh rows
// back into their original positions.
func (b *Builder) featurizeChunk(ctx context.Context, chunk *batch.Chunk) ([][]float32, error) {
	rows := make([][]float32, len(chunk.Records))
	missed := make([]int, 0, len(chunk.Records))

	if b.cache != nil {
		for i, record := range chunk.Records {
			if vector, ok := b.cache.Lookup(record.Path); ok {
				rows[i] = vector
			} else {
				missed = append(missed, i)
			}
		}
	} else {
		for i := range chunk.Records {
			missed = append(missed, i)
		}
	}
	if len(missed) == 0 {
		return rows, nil
	}

	payloads, err := chunk.Read()
	if err != nil {
		return nil, err
	}
	missedPayloads := make([][]byte, len(missed))
	for i, rowIdx := range missed {
		missedPayloads[i] = payloads[rowIdx]
	}

	vectors, err := b.featurizer.Featurize(ctx, missedPayloads)
	if err != nil {
		if _, ok := err.(*errors.ExternalServiceError); ok {
			return nil, err
		}
		return nil, &errors.ExternalServiceError{
			Service:  "featurizer",
			ErrorMsg: fmt.Sprintf("featurizer call failed for chunk at offset %d: %v", chunk.Offset, err),
		}
	}
	if len(vectors) != len(missedPayloads) {
		return nil, &errors.AlignmentError{
			ErrorMsg: fmt.Sprintf("featurizer returned %d vectors for %d inputs at chunk offset %d",
				len(vectors), len(missedPayloads), chunk.Offset),
		}
	}

	for i, rowIdx := range missed {
		rows[rowIdx] = vectors[i]
		if b.cache != nil {
			b.cache.Store(chunk.Records[rowIdx].Path, vectors[i])
		}
	}
	return rows, nil
}
