package main

import (
	"runtime/debug"

	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/external/featurizer"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/external/trainer"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/pipeline"
	"github.com/Meesho/BharatMLStack/transferflow/internal/server"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/configs"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/etcd"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/inmemorycache"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/metrics"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/middleware"
)

func main() {
	viper.AutomaticEnv()

	appConfigs := &configs.AppConfigs{}
	configs.InitConfig(appConfigs)

	logger.InitLogger(appConfigs)
	metrics.InitMetrics(appConfigs)

	if appConfigs.Configs.AppGcPercentage > 0 {
		debug.SetGCPercent(appConfigs.Configs.AppGcPercentage)
	}

	etcd.Init(etcd.DefaultVersion, &config.PipelineConfig{}, appConfigs)
	inmemorycache.InitV1()

	featurizer.InitFeaturizerHandler(appConfigs)
	trainer.InitTrainerHandler(appConfigs)
	pipeline.InitPipelineHandler(appConfigs)

	// re-register components whenever the pipeline config document changes
	err := etcd.Instance().RegisterWatchPathCallback("", pipeline.ReloadPipelineConfigMapAndRegisterComponents)
	if err != nil {
		logger.Error("unable to register pipeline config watch callback", err)
	}

	middleware.InitMiddleware("x-request-id", "x-client-id")
	server.InitServer(appConfigs)
}
