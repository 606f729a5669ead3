package config

// PipelineConfig is the dynamic configuration document stored in etcd. One
// entry per pipeline ID.
type PipelineConfig struct {
	ConfigMap     map[string]Config `json:"pipeline_config_map"`
	ServiceConfig ServiceConfig     `json:"service-config"`
}

type ServiceConfig struct {
	ErrorLoggingPercentage int `json:"error-logging-percentage"`
}

type Config struct {
	DAGExecutionConfig DAGExecutionConfig `json:"dag_execution_config"`
	DatasetConfig      DatasetConfig      `json:"dataset_config"`
	BatchConfig        BatchConfig        `json:"batch_config"`
	FeatureCacheConfig FeatureCacheConfig `json:"feature_cache_config"`
	SplitConfig        SplitConfig        `json:"split_config"`
	FitConfig          FitConfig          `json:"fit_config"`
}

type DAGExecutionConfig struct {
	ComponentDependency map[string][]string `json:"component_dependency"`
}

// DatasetConfig describes the two-class corpus layout on disk. NegativeDir
// holds class 0, PositiveDir class 1.
type DatasetConfig struct {
	RootDir     string `json:"root_dir"`
	NegativeDir string `json:"negative_dir"`
	PositiveDir string `json:"positive_dir"`
	Pattern     string `json:"pattern"`
	MIMEType    string `json:"mime_type"`
	SampleCap   int    `json:"sample_cap"`
}

type BatchConfig struct {
	ChunkSize int `json:"chunk_size"`
}

type FeatureCacheConfig struct {
	Enabled    bool   `json:"enabled"`
	TTLSeconds int    `json:"ttl_seconds"`
	Codec      string `json:"codec"`
}

type SplitConfig struct {
	Seed          int64   `json:"seed"`
	TrainFraction float64 `json:"train_fraction"`
}

type FitConfig struct {
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batch_size"`
	LearningRate float64 `json:"learning_rate"`
	Optimizer    string  `json:"optimizer"`
}

const (
	DefaultPattern       = "*.jpg"
	DefaultMIMEType      = "image/jpeg"
	DefaultChunkSize     = 5
	DefaultTrainFraction = 0.75
)
