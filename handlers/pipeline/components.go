package pipeline

import (
	"fmt"
	"time"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/batch"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/dataset"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/external/featurizer"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/features"
	"github.com/Meesho/BharatMLStack/transferflow/handlers/split"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/inmemorycache"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/metrics"
)

const (
	ScannerComponentName  = "dataset_scanner"
	LabelComponentName    = "label_assigner"
	FeatureComponentName  = "feature_builder"
	SplitterComponentName = "dataset_splitter"

	pipelineId = "pipeline-id"
	component  = "component"
	errorType  = "error-type"

	compExecErr = "component-execution-error"
	compSkipped = "component-skipped"
)

// componentRequest extracts the shared request and reports whether the
// component should run at all. A request already carrying an error is
// passed through untouched.
func componentRequest(request interface{}, componentName string) (*PipelineRequest, bool) {
	req, ok := request.(*PipelineRequest)
	if !ok {
		logger.Error(fmt.Sprintf("Unexpected request type for component %s", componentName), nil)
		return nil, false
	}
	if req.Err != nil {
		metrics.Count("transferflow.component.execution.error", 1,
			[]string{pipelineId, req.PipelineID, component, componentName, errorType, compSkipped})
		return nil, false
	}
	return req, true
}

// ScannerComponent builds the dataset index from the configured class
// directories.
type ScannerComponent struct {
	ComponentName string
}

func (c *ScannerComponent) GetComponentName() string {
	return c.ComponentName
}

func (c *ScannerComponent) Run(request interface{}) {
	req, ok := componentRequest(request, c.ComponentName)
	if !ok {
		return
	}
	metricTags := []string{pipelineId, req.PipelineID, component, c.ComponentName}
	t := time.Now()
	metrics.Count("transferflow.component.execution.total", 1, metricTags)

	scanner := dataset.NewScanner(&dataset.MimeValidator{MIME: req.Conf.DatasetConfig.MIMEType})
	index, err := scanner.Scan(&req.Conf.DatasetConfig)
	if err != nil {
		logger.Error(fmt.Sprintf("Dataset scan failed for pipeline %s", req.PipelineID), err)
		metrics.Count("transferflow.component.execution.error", 1, append(metricTags, errorType, compExecErr))
		req.Err = err
		return
	}
	req.Index = index
	metrics.Timing("transferflow.component.execution.latency", time.Since(t), metricTags)
}

// LabelComponent derives the label vector and its one-hot form from the
// index. It never reorders the index.
type LabelComponent struct {
	ComponentName string
}

func (c *LabelComponent) GetComponentName() string {
	return c.ComponentName
}

func (c *LabelComponent) Run(request interface{}) {
	req, ok := componentRequest(request, c.ComponentName)
	if !ok {
		return
	}
	metricTags := []string{pipelineId, req.PipelineID, component, c.ComponentName}
	t := time.Now()
	metrics.Count("transferflow.component.execution.total", 1, metricTags)

	if req.Index == nil {
		metrics.Count("transferflow.component.execution.error", 1, append(metricTags, errorType, compExecErr))
		req.Err = fmt.Errorf("component %s ran before the dataset index was built", c.ComponentName)
		return
	}
	req.Labels = dataset.Labels(req.Index)
	req.OneHot = dataset.OneHot(req.Labels)
	metrics.Timing("transferflow.component.execution.latency", time.Since(t), metricTags)
}

// FeatureComponent featurizes the index chunk by chunk into the row-aligned
// feature matrix.
type FeatureComponent struct {
	ComponentName string
}

func (c *FeatureComponent) GetComponentName() string {
	return c.ComponentName
}

func (c *FeatureComponent) Run(request interface{}) {
	req, ok := componentRequest(request, c.ComponentName)
	if !ok {
		return
	}
	metricTags := []string{pipelineId, req.PipelineID, component, c.ComponentName}
	t := time.Now()
	metrics.Count("transferflow.component.execution.total", 1, metricTags)

	if req.Index == nil {
		metrics.Count("transferflow.component.execution.error", 1, append(metricTags, errorType, compExecErr))
		req.Err = fmt.Errorf("component %s ran before the dataset index was built", c.ComponentName)
		return
	}
	reader, err := batch.NewReader(req.Conf.BatchConfig.ChunkSize)
	if err != nil {
		metrics.Count("transferflow.component.execution.error", 1, append(metricTags, errorType, compExecErr))
		req.Err = err
		return
	}

	var cache *features.VectorCache
	if req.Conf.FeatureCacheConfig.Enabled {
		cache, err = features.NewVectorCache(inmemorycache.Instance(), &req.Conf.FeatureCacheConfig)
		if err != nil {
			metrics.Count("transferflow.component.execution.error", 1, append(metricTags, errorType, compExecErr))
			req.Err = err
			return
		}
	}

	matrix, err := features.NewBuilder(reader, featurizer.Instance(), cache).Build(req.Ctx, req.Index)
	if err != nil {
		logger.Error(fmt.Sprintf("Feature build failed for pipeline %s", req.PipelineID), err)
		metrics.Count("transferflow.component.execution.error", 1, append(metricTags, errorType, compExecErr))
		req.Err = err
		return
	}
	req.Matrix = matrix
	metrics.Timing("transferflow.component.execution.latency", time.Since(t), metricTags)
}

// SplitterComponent shuffles the aligned matrix and labels with the seeded
// permutation and cuts train/test partitions.
type SplitterComponent struct {
	ComponentName string
}

func (c *SplitterComponent) GetComponentName() string {
	return c.ComponentName
}

func (c *SplitterComponent) Run(request interface{}) {
	req, ok := componentRequest(request, c.ComponentName)
	if !ok {
		return
	}
	metricTags := []string{pipelineId, req.PipelineID, component, c.ComponentName}
	t := time.Now()
	metrics.Count("transferflow.component.execution.total", 1, metricTags)

	if req.Matrix == nil || req.OneHot == nil {
		metrics.Count("transferflow.component.execution.error", 1, append(metricTags, errorType, compExecErr))
		req.Err = fmt.Errorf("component %s ran before features and labels were built", c.ComponentName)
		return
	}
	result, err := split.Split(req.Matrix.Data(), req.OneHot, req.Conf.SplitConfig.Seed, req.Conf.SplitConfig.TrainFraction)
	if err != nil {
		logger.Error(fmt.Sprintf("Split failed for pipeline %s", req.PipelineID), err)
		metrics.Count("transferflow.component.execution.error", 1, append(metricTags, errorType, compExecErr))
		req.Err = err
		return
	}
	req.Split = result
	metrics.Timing("transferflow.component.execution.latency", time.Since(t), metricTags)
}
