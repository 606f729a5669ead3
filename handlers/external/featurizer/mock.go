package featurizer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockFeaturizer struct {
	mock.Mock
}

func (m *MockFeaturizer) Featurize(ctx context.Context, batch [][]byte) ([][]float32, error) {
	args := m.Called(ctx, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}
