package features

import "context"

// Featurizer maps a batch of raw file payloads to one fixed-width numeric
// vector per payload, preserving input order. The call is treated as opaque:
// it may be remote and accelerator backed, and it is never retried here.
type Featurizer interface {
	Featurize(ctx context.Context, batch [][]byte) ([][]float32, error)
}
