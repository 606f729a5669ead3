package inmemorycache

import (
	"github.com/rs/zerolog/log"
)

var (
	instance InMemoryCache
)

// Init initializes the in-memory-cache, to be called from main.go
func Init(version int) {
	once.Do(func() {
		switch version {
		case 1:
			instance = newV1InMemoryCache("feature_vector_cache_v1")
		default:
			log.Panic().Msgf("invalid version %d", version)
		}
	})
}

// InitV1 initializes the in-memory-cache with version 1
func InitV1() {
	Init(1)
}

// Instance returns the in-memory-cache instance. Ensure that Init
// is called before calling this function
func Instance() InMemoryCache {
	if instance == nil {
		log.Panic().Msg("in-memory-cache not initialized, call Init first")
	}
	return instance
}

// SetMockInstance sets the mock instance of in-memory-cache
// This would be handy in places where we are directly using in-memory-cache as inmemorycache.Instance()
func SetMockInstance(mock InMemoryCache) {
	instance = mock
}
