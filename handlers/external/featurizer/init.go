package featurizer

import (
	"sync"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/features"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/configs"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
)

var (
	instance features.Featurizer
	once     sync.Once
)

// InitFeaturizerHandler initializes the featurizer client, to be called from main.go
func InitFeaturizerHandler(configs *configs.AppConfigs) {
	once.Do(func() {
		instance = newV1(configs)
		logger.Info("Featurizer client initialized")
	})
}

// Instance returns the featurizer client. Ensure that InitFeaturizerHandler
// is called before calling this function
func Instance() features.Featurizer {
	if instance == nil {
		logger.Panic("featurizer client not initialized, call InitFeaturizerHandler first", nil)
	}
	return instance
}

// SetMockInstance overrides the singleton for tests.
func SetMockInstance(mock features.Featurizer) {
	instance = mock
}
