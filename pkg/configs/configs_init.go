package configs

import (
	"log"

	"github.com/spf13/viper"
)

func InitConfig(appConfigs *AppConfigs) {
	staticConfig := appConfigs.GetStaticConfig()
	cfg, ok := staticConfig.(*Configs)
	if !ok {
		log.Fatal("Failed to cast static config to *Configs")
	}

	// Manually bind environment variables to mapstructure keys
	// This ensures proper mapping from env vars to struct fields
	bindEnvVars()

	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatalf("Failed to unmarshal config from environment: %v", err)
	}

	log.Println("Configuration loaded from environment variables")
}

func bindEnvVars() {
	// Application config
	viper.BindEnv("app_env", "APP_ENV")
	viper.BindEnv("app_log_level", "APP_LOG_LEVEL")
	viper.BindEnv("app_name", "APP_NAME")
	viper.BindEnv("app_port", "APP_PORT")
	viper.BindEnv("app_gc_percentage", "APP_GC_PERCENTAGE")

	// In-memory cache config
	viper.BindEnv("in-memory-cache_size-in-bytes", "IN_MEMORY_CACHE_SIZE_IN_BYTES")

	// DAG topology config
	viper.BindEnv("dagTopologyCache_cacheSize", "DAG_TOPOLOGY_CACHE_SIZE")
	viper.BindEnv("dagTopologyCache_ttlSec", "DAG_TOPOLOGY_CACHE_TTL_SEC")

	// ETCD config
	viper.BindEnv("etcd_watcherEnabled", "ETCD_WATCHER_ENABLED")
	viper.BindEnv("etcd_server", "ETCD_SERVER")
	viper.BindEnv("etcd_username", "ETCD_USERNAME")
	viper.BindEnv("etcd_password", "ETCD_PASSWORD")

	// Featurizer client config
	viper.BindEnv("featurizerClientV1_host", "FEATURIZER_CLIENT_V1_HOST")
	viper.BindEnv("featurizerClientV1_port", "FEATURIZER_CLIENT_V1_PORT")
	viper.BindEnv("featurizerClientV1_deadlineMs", "FEATURIZER_CLIENT_V1_DEADLINE_MS")
	viper.BindEnv("featurizerClientV1_authToken", "FEATURIZER_CLIENT_V1_AUTHTOKEN")

	// Trainer client config
	viper.BindEnv("trainerClientV1_host", "TRAINER_CLIENT_V1_HOST")
	viper.BindEnv("trainerClientV1_port", "TRAINER_CLIENT_V1_PORT")
	viper.BindEnv("trainerClientV1_deadlineMs", "TRAINER_CLIENT_V1_DEADLINE_MS")
	viper.BindEnv("trainerClientV1_authToken", "TRAINER_CLIENT_V1_AUTHTOKEN")

	// Metrics / Telegraf config
	viper.BindEnv("metrics_sampling_rate", "METRIC_SAMPLING_RATE")
	viper.BindEnv("telegraf_host", "TELEGRAF_HOST")
	viper.BindEnv("telegraf_port", "TELEGRAF_PORT")
}
