package trainer

import (
	"sync"

	"github.com/Meesho/BharatMLStack/transferflow/pkg/configs"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
)

var (
	instance Trainer
	once     sync.Once
)

// InitTrainerHandler initializes the trainer client, to be called from main.go
func InitTrainerHandler(configs *configs.AppConfigs) {
	once.Do(func() {
		instance = newV1(configs)
		logger.Info("Trainer client initialized")
	})
}

// Instance returns the trainer client. Ensure that InitTrainerHandler is
// called before calling this function
func Instance() Trainer {
	if instance == nil {
		logger.Panic("trainer client not initialized, call InitTrainerHandler first", nil)
	}
	return instance
}

// SetMockInstance overrides the singleton for tests.
func SetMockInstance(mock Trainer) {
	instance = mock
}
