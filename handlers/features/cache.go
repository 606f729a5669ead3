package features

import (
	"fmt"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/inmemorycache"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/metrics"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/vectorcodec"
)

// VectorCache remembers featurizer output per file path, so re-runs over an
// unchanged corpus skip the expensive featurization calls.
type VectorCache struct {
	cache      inmemorycache.InMemoryCache
	mode       vectorcodec.Mode
	ttlSeconds int
}

func NewVectorCache(cache inmemorycache.InMemoryCache, conf *config.FeatureCacheConfig) (*VectorCache, error) {
	mode, err := vectorcodec.ParseMode(conf.Codec)
	if err != nil {
		return nil, fmt.Errorf("feature cache config: %w", err)
	}
	return &VectorCache{cache: cache, mode: mode, ttlSeconds: conf.TTLSeconds}, nil
}

func (c *VectorCache) Lookup(path string) ([]float32, bool) {
	data, err := c.cache.Get([]byte(path))
	if err != nil {
		metrics.Count("transferflow.feature.cache.miss", 1, nil)
		return nil, false
	}
	vector, err := vectorcodec.Decode(data)
	if err != nil {
		logger.Error(fmt.Sprintf("corrupt cached vector for %s, dropping entry", path), err)
		c.cache.Delete([]byte(path))
		return nil, false
	}
	metrics.Count("transferflow.feature.cache.hit", 1, nil)
	return vector, true
}

func (c *VectorCache) Store(path string, vector []float32) {
	data, err := vectorcodec.Encode(vector, c.mode)
	if err != nil {
		logger.Error(fmt.Sprintf("unable to encode vector for %s", path), err)
		return
	}
	if c.ttlSeconds > 0 {
		err = c.cache.SetEx([]byte(path), data, c.ttlSeconds)
	} else {
		err = c.cache.Set([]byte(path), data)
	}
	if err != nil {
		// cache writes are best effort, the matrix row is already in hand
		logger.Error(fmt.Sprintf("unable to cache vector for %s", path), err)
	}
}
