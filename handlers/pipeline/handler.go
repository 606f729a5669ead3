package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/evaluation"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/external/featurizer"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/external/trainer"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/cache"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/configs"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/dag"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/etcd"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/metrics"
)

var (
	handler           *PipelineHandler
	componentProvider *ComponentProviderHandler
	handlerOnce       sync.Once
)

// PipelineHandler drives full pipeline runs: DAG execution over the shared
// request, then training and evaluation on the resulting split. Finished runs
// leave a Bundle behind so the scoring endpoint can reuse the trained model.
type PipelineHandler struct {
	executor *dag.Executor

	bundleMutex sync.RWMutex
	bundles     map[string]*Bundle
}

func newPipelineHandler(provider *ComponentProviderHandler, dagCacheSize, dagCacheTTL int64) *PipelineHandler {
	return &PipelineHandler{
		executor: &dag.Executor{
			Registry: &dag.ComponentGraphRegistry{
				Cache: cache.InitRistrettoCache(dagCacheSize, dagCacheTTL),
				Initializer: &dag.ComponentInitializer{
					ComponentProvider: provider,
				},
			},
		},
		bundles: make(map[string]*Bundle),
	}
}

// InitPipelineHandler wires the pipeline handler from the etcd-backed
// configuration, to be called from main.go
func InitPipelineHandler(appConfigs *configs.AppConfigs) {
	handlerOnce.Do(func() {
		componentProvider = &ComponentProviderHandler{
			componentMap: make(map[string]dag.AbstractComponent),
		}

		pipelineConfig := etcd.Instance().GetConfigInstance().(*config.PipelineConfig)
		config.SetPipelineConfigMap(pipelineConfig)

		// register components in config map
		componentProvider.RegisterComponent(config.GetPipelineConfigMap())

		handler = newPipelineHandler(componentProvider,
			appConfigs.Configs.DagTopologyCacheSize, appConfigs.Configs.DagTopologyCacheTTL)
		logger.Info("Pipeline handler initialized")
	})
}

// Instance returns the pipeline handler. Ensure that InitPipelineHandler is
// called before calling this function
func Instance() *PipelineHandler {
	if handler == nil {
		logger.Panic("pipeline handler not initialized, call InitPipelineHandler first", nil)
	}
	return handler
}

// ReloadPipelineConfigMapAndRegisterComponents refreshes the pipeline config
// map after an etcd change and re-registers components against it.
func ReloadPipelineConfigMapAndRegisterComponents() error {
	updatedConfig, ok := etcd.Instance().GetConfigInstance().(*config.PipelineConfig)
	if ok {
		config.SetPipelineConfigMap(updatedConfig)

		// register components in config map
		componentProvider.RegisterComponent(updatedConfig)

		return nil
	}
	return fmt.Errorf("failed to parse pipeline config from etcd")
}

// RunPipeline executes the configured component DAG for the pipeline ID,
// trains on the train partition and evaluates on the held-out partition.
func (h *PipelineHandler) RunPipeline(ctx context.Context, pipelineID string) (*RunResult, error) {
	startTime := time.Now()
	conf, err := config.GetPipelineConfig(pipelineID)
	if err != nil {
		return nil, err
	}

	tags := []string{pipelineId, pipelineID}
	metrics.Count("transferflow.pipeline.run.total", 1, tags)

	req := &PipelineRequest{
		Ctx:        ctx,
		PipelineID: pipelineID,
		Conf:       conf,
	}
	if err := h.executor.Execute(conf.DAGExecutionConfig.ComponentDependency, req); err != nil {
		metrics.Count("transferflow.pipeline.run.error", 1, tags)
		return nil, err
	}
	if req.Err != nil {
		metrics.Count("transferflow.pipeline.run.error", 1, tags)
		return nil, req.Err
	}
	if req.Split == nil {
		metrics.Count("transferflow.pipeline.run.error", 1, tags)
		return nil, fmt.Errorf("pipeline %s finished without producing a split; check the component dependency config", pipelineID)
	}

	modelRef, err := trainer.Instance().Fit(ctx, req.Split.XTrain, req.Split.YTrain, conf.FitConfig)
	if err != nil {
		metrics.Count("transferflow.pipeline.run.error", 1, tags)
		return nil, err
	}
	probabilities, err := trainer.Instance().Predict(ctx, modelRef, req.Split.XTest)
	if err != nil {
		metrics.Count("transferflow.pipeline.run.error", 1, tags)
		return nil, err
	}
	report, err := evaluation.Report(evaluation.LabelsFromOneHot(req.Split.YTest), probabilities)
	if err != nil {
		metrics.Count("transferflow.pipeline.run.error", 1, tags)
		return nil, err
	}

	bundle := &Bundle{ModelRef: modelRef, FeatureWidth: req.Matrix.Width()}
	h.bundleMutex.Lock()
	h.bundles[pipelineID] = bundle
	h.bundleMutex.Unlock()

	duration := time.Since(startTime)
	metrics.Timing("transferflow.pipeline.run.latency", duration, tags)
	logger.Info(fmt.Sprintf("Pipeline %s finished: %d rows, accuracy %.4f, auc %.4f",
		pipelineID, req.Index.Len(), report.Accuracy, report.AUC))

	return &RunResult{
		PipelineID:   pipelineID,
		ModelRef:     modelRef,
		FeatureWidth: bundle.FeatureWidth,
		TotalRows:    req.Index.Len(),
		TrainRows:    len(req.Split.XTrain),
		TestRows:     len(req.Split.XTest),
		Metrics:      report,
		DurationMs:   duration.Milliseconds(),
	}, nil
}

// Score featurizes raw payloads and scores them against the model left behind
// by the pipeline's last finished run.
func (h *PipelineHandler) Score(ctx context.Context, pipelineID string, payloads [][]byte) ([][]float32, error) {
	h.bundleMutex.RLock()
	bundle, ok := h.bundles[pipelineID]
	h.bundleMutex.RUnlock()
	if !ok {
		return nil, &errors.DataNotFoundError{
			ErrorMsg: fmt.Sprintf("no trained model for pipeline %s; run the pipeline first", pipelineID),
		}
	}

	vectors, err := featurizer.Instance().Featurize(ctx, payloads)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(payloads) {
		return nil, &errors.AlignmentError{
			ErrorMsg: fmt.Sprintf("featurizer returned %d vectors for %d payloads", len(vectors), len(payloads)),
		}
	}
	for i, vector := range vectors {
		if len(vector) != bundle.FeatureWidth {
			return nil, &errors.AlignmentError{
				ErrorMsg: fmt.Sprintf("vector %d has width %d, model expects %d", i, len(vector), bundle.FeatureWidth),
			}
		}
	}
	return trainer.Instance().Predict(ctx, bundle.ModelRef, vectors)
}
