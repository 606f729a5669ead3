package trainer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
)

type MockTrainer struct {
	mock.Mock
}

func (m *MockTrainer) Fit(ctx context.Context, features [][]float32, labels [][]int, conf config.FitConfig) (string, error) {
	args := m.Called(ctx, features, labels, conf)
	return args.String(0), args.Error(1)
}

func (m *MockTrainer) Predict(ctx context.Context, modelRef string, features [][]float32) ([][]float32, error) {
	args := m.Called(ctx, modelRef, features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}
