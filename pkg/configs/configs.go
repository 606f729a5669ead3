package configs

type Configs struct {
	ApplicationEnv      string `mapstructure:"app_env"`
	ApplicationLogLevel string `mapstructure:"app_log_level"`
	ApplicationName     string `mapstructure:"app_name"`
	ApplicationPort     int    `mapstructure:"app_port"`
	AppGcPercentage     int    `mapstructure:"app_gc_percentage"`

	//in-memory-cache-config
	InMemoryCacheSizeInBytes string `mapstructure:"in-memory-cache_size-in-bytes"`

	//dag-topology-cache-config
	DagTopologyCacheTTL  int64 `mapstructure:"dagTopologyCache_ttlSec"`
	DagTopologyCacheSize int64 `mapstructure:"dagTopologyCache_cacheSize"`

	//telegraf-config
	MetricsSamplingRate string `mapstructure:"metrics_sampling_rate"`
	Telegraf_Host       string `mapstructure:"telegraf_host"`
	Telegraf_Port       string `mapstructure:"telegraf_port"`

	//etcd-config
	ETCD_WATCHER_ENABLED bool   `mapstructure:"etcd_watcherEnabled"`
	ETCD_SERVER          string `mapstructure:"etcd_server"`
	ETCD_USERNAME        string `mapstructure:"etcd_username"`
	ETCD_PASSWORD        string `mapstructure:"etcd_password"`

	//featurizer-client-config
	FeaturizerClientV1_Host       string `mapstructure:"featurizerClientV1_host"`
	FeaturizerClientV1_Port       int    `mapstructure:"featurizerClientV1_port"`
	FeaturizerClientV1_DeadlineMs int    `mapstructure:"featurizerClientV1_deadlineMs"`
	FeaturizerClientV1_AuthToken  string `mapstructure:"featurizerClientV1_authToken"`

	//trainer-client-config
	TrainerClientV1_Host       string `mapstructure:"trainerClientV1_host"`
	TrainerClientV1_Port       int    `mapstructure:"trainerClientV1_port"`
	TrainerClientV1_DeadlineMs int    `mapstructure:"trainerClientV1_deadlineMs"`
	TrainerClientV1_AuthToken  string `mapstructure:"trainerClientV1_authToken"`
}

type DynamicConfigs struct {
}

type AppConfigs struct {
	Configs        Configs
	DynamicConfigs DynamicConfigs
}

func (a *AppConfigs) GetStaticConfig() interface{} {
	return &a.Configs
}

func (a *AppConfigs) GetDynamicConfig() interface{} {
	return &a.Configs
}
