package trainer

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
	defaultDeadlineMs = 120000
	serviceName       = "trainer"
)

// V1 is the JSON-over-HTTP client for the training service.
type V1 struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

func newV1(conf *configs.AppConfigs) *V1 {
	deadline := conf.Configs.TrainerClientV1_DeadlineMs
	if deadline == 0 {
		deadline = defaultDeadlineMs
	}
	return &V1{
		httpClient: &http.Client{Timeout: time.Duration(deadline) * time.Millisecond},
		baseURL: fmt.Sprintf("http://%s:%d",
			conf.Configs.TrainerClientV1_Host, conf.Configs.TrainerClientV1_Port),
		authToken: conf.Configs.TrainerClientV1_AuthToken,
	}
}

func (c *V1) Fit(ctx context.Context, features [][]float32, labels [][]int, conf config.FitConfig) (string, error) {
	if len(features) != len(labels) {
		return "", &errors.AlignmentError{
			ErrorMsg: fmt.Sprintf("fit called with %d feature rows and %d label rows", len(features), len(labels)),
		}
	}
	fitReq := FitRequest{
		Features:     features,
		Labels:       labels,
		Epochs:       conf.Epochs,
		BatchSize:    conf.BatchSize,
		LearningRate: conf.LearningRate,
		Optimizer:    conf.Optimizer,
	}
	var fitResp FitResponse
	if err := c.post(ctx, "/v1/fit", fitReq, &fitResp); err != nil {
		return "", err
	}
	if fitResp.Error != "" {
		return "", &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fitResp.Error}
	}
	if fitResp.ModelRef == "" {
		return "", &errors.ExternalServiceError{Service: serviceName, ErrorMsg: "trainer returned empty model ref"}
	}
	return fitResp.ModelRef, nil
}

func (c *V1) Predict(ctx context.Context, modelRef string, features [][]float32) ([][]float32, error) {
	var predictResp PredictResponse
	if err := c.post(ctx, "/v1/predict", PredictRequest{ModelRef: modelRef, Features: features}, &predictResp); err != nil {
		return nil, err
	}
	if predictResp.Error != "" {
		return nil, &errors.ExternalServiceError{Service: serviceName, ErrorMsg: predictResp.Error}
	}
	if len(predictResp.Probabilities) != len(features) {
		return nil, &errors.AlignmentError{
			ErrorMsg: fmt.Sprintf("trainer returned %d probability rows for %d feature rows",
				len(predictResp.Probabilities), len(features)),
		}
	}
	return predictResp.Probabilities, nil
}

func (c *V1) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	metricTags := []string{"ext-service:trainer", "endpoint:" + path}

	body, err := json.Marshal(payload)
	if err != nil {
		return &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("marshal %s request: %v", path, err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("build %s request: %v", path, err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	startTime := time.Now()
	metrics.Count("transferflow.external.api.request.total", 1, metricTags)
	resp, err := c.httpClient.Do(req)
	metrics.Timing("transferflow.external.api.request.latency", time.Since(startTime), metricTags)
	if err != nil {
		metrics.Count("transferflow.external.api.request.error", 1, metricTags)
		logger.PercentError(fmt.Sprintf("Trainer %s call failed", path), err, config.GetErrorLoggingPercentage())
		return &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("%s call failed: %v", path, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("read %s response: %v", path, err)}
	}
	if resp.StatusCode != http.StatusOK {
		metrics.Count("transferflow.external.api.request.error", 1, metricTags)
		logger.PercentError(fmt.Sprintf("Trainer returned status %d for %s", resp.StatusCode, path), nil, config.GetErrorLoggingPercentage())
		return &errors.ExternalServiceError{
			Service:  serviceName,
			ErrorMsg: fmt.Sprintf("trainer returned status %d for %s: %s", resp.StatusCode, path, string(data)),
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &errors.ExternalServiceError{Service: serviceName, ErrorMsg: fmt.Sprintf("decode %s response: %v", path, err)}
	}
	return nil
}
