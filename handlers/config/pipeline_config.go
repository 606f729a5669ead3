package config

import (
	"fmt"
	"sync"
)

var (
	pConfig *PipelineConfig
	mu      sync.RWMutex
)

func GetPipelineConfigMap() *PipelineConfig {
	mu.RLock()
	defer mu.RUnlock()
	return pConfig
}

// GetPipelineConfig returns the Config for a specific pipeline ID with
// defaults applied.
func GetPipelineConfig(pipelineId string) (*Config, error) {
	mu.RLock()
	defer mu.RUnlock()
	if pConfig == nil {
		return nil, fmt.Errorf("pipeline config map not initialised")
	}
	conf, ok := pConfig.ConfigMap[pipelineId]
	if !ok {
		return nil, fmt.Errorf("pipeline config not found for id: %s", pipelineId)
	}
	applyDefaults(&conf)
	if err := validatePipelineConfig(&conf); err != nil {
		return nil, fmt.Errorf("pipeline config invalid for id %s: %w", pipelineId, err)
	}
	return &conf, nil
}

// GetErrorLoggingPercentage returns the sampled-error-logging percentage for
// high-volume error paths. Zero means the logger's default sampling applies.
func GetErrorLoggingPercentage() int {
	mu.RLock()
	defer mu.RUnlock()
	if pConfig == nil {
		return 0
	}
	return pConfig.ServiceConfig.ErrorLoggingPercentage
}

func SetPipelineConfigMap(config *PipelineConfig) {
	mu.Lock()
	defer mu.Unlock()
	pConfig = config
}

func applyDefaults(c *Config) {
	if c.DatasetConfig.Pattern == "" {
		c.DatasetConfig.Pattern = DefaultPattern
	}
	if c.DatasetConfig.MIMEType == "" {
		c.DatasetConfig.MIMEType = DefaultMIMEType
	}
	if c.BatchConfig.ChunkSize == 0 {
		c.BatchConfig.ChunkSize = DefaultChunkSize
	}
	if c.SplitConfig.TrainFraction == 0 {
		c.SplitConfig.TrainFraction = DefaultTrainFraction
	}
}

func validatePipelineConfig(c *Config) error {
	if c.DatasetConfig.RootDir == "" {
		return fmt.Errorf("dataset root_dir is empty")
	}
	if c.DatasetConfig.NegativeDir == "" || c.DatasetConfig.PositiveDir == "" {
		return fmt.Errorf("both class directories must be set")
	}
	if c.DatasetConfig.SampleCap < 1 {
		return fmt.Errorf("sample_cap must be >= 1, got %d", c.DatasetConfig.SampleCap)
	}
	if c.BatchConfig.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be >= 1, got %d", c.BatchConfig.ChunkSize)
	}
	if c.SplitConfig.TrainFraction <= 0 || c.SplitConfig.TrainFraction >= 1 {
		return fmt.Errorf("train_fraction must be in (0, 1), got %f", c.SplitConfig.TrainFraction)
	}
	if len(c.DAGExecutionConfig.ComponentDependency) == 0 {
		return fmt.Errorf("dag component_dependency is empty")
	}
	return nil
}
