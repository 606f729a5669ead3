package featurizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/configs"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/metrics"
)

const (
	defaultDeadlineMs = 30000
	serviceName       = "featurizer"
)

var featurizerMetricTags = []string{"ext-service:featurizer", "endpoint:/v1/featurize"}

// V1 is the JSON-over-HTTP client for the featurization service. The
// service is order preserving: vector i belongs to instance i.
type V1 struct {
	httpClient *http.Client
	endpoint   string
	authToken  string
}

func newV1(conf *configs.AppConfigs) *V1 {
	deadline := conf.Configs.FeaturizerClientV1_DeadlineMs
	if deadline == 0 {
		deadline = defaultDeadlineMs
	}
	return &V1{
		httpClient: &http.Client{Timeout: time.Duration(deadline) * time.Millisecond},
		endpoint: fmt.Sprintf("http://%s:%d/v1/featurize",
			conf.Configs.FeaturizerClientV1_Host, conf.Configs.FeaturizerClientV1_Port),
		authToken: conf.Configs.FeaturizerClientV1_AuthToken,
	}
}

func (c *V1) Featurize(ctx context.Context, batch [][]byte) ([][]float32, error) {
	body, err := json.Marshal(FeaturizeRequest{Instances: batch})
	if err != nil {
		return nil, &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("marshal featurize request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("build featurize request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	startTime := time.Now()
	metrics.Count("transferflow.external.api.request.total", 1, featurizerMetricTags)
	resp, err := c.httpClient.Do(req)
	metrics.Timing("transferflow.external.api.request.latency", time.Since(startTime), featurizerMetricTags)
	if err != nil {
		metrics.Count("transferflow.external.api.request.error", 1, featurizerMetricTags)
		logger.PercentError("Featurize call failed", err, config.GetErrorLoggingPercentage())
		return nil, &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("featurize call failed: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("read featurize response: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		metrics.Count("transferflow.external.api.request.error", 1, featurizerMetricTags)
		logger.PercentError(fmt.Sprintf("Featurizer returned status %d", resp.StatusCode), nil, config.GetErrorLoggingPercentage())
		return nil, &errors.ExternalServiceError{
			Service:  serviceName,
			ErrorMsg: fmt.Sprintf("featurizer returned status %d: %s", resp.StatusCode, string(data)),
		}
	}

	var featurizeResp FeaturizeResponse
	if err := json.Unmarshal(data, &featurizeResp); err != nil {
		return nil, &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("decode featurize response: %v", err)}
	}
	if featurizeResp.Error != "" {
		return nil, &errors.ExternalServiceError{Service: serviceName, ErrorMsg: featurizeResp.Error}
	}
	return featurizeResp.Vectors, nil
}
