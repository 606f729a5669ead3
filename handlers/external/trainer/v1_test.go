package trainer

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/configs"
)

func clientForServer(t *testing.T, server *httptest.Server) *V1 {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	appConfigs := &configs.AppConfigs{}
	appConfigs.Configs.TrainerClientV1_Host = host
	appConfigs.Configs.TrainerClientV1_Port = port
	appConfigs.Configs.TrainerClientV1_DeadlineMs = 2000
	return newV1(appConfigs)
}

func TestFitSuccess(t *testing.T) {
	var received FitRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/fit", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(FitResponse{ModelRef: "model-ref-7"})
	}))
	defer server.Close()

	client := clientForServer(t, server)
	fitConf := config.FitConfig{Epochs: 5, BatchSize: 4, LearningRate: 0.001, Optimizer: "rmsprop"}
	modelRef, err := client.Fit(context.Background(), [][]float32{{1, 2}}, [][]int{{1, 0}}, fitConf)
	require.NoError(t, err)
	assert.Equal(t, "model-ref-7", modelRef)
	assert.Equal(t, [][]float32{{1, 2}}, received.Features)
	assert.Equal(t, [][]int{{1, 0}}, received.Labels)
	assert.Equal(t, 5, received.Epochs)
	assert.Equal(t, "rmsprop", received.Optimizer)
}

func TestFitRejectsMisalignedRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("misaligned fit input must never reach the trainer")
	}))
	defer server.Close()

	client := clientForServer(t, server)
	_, err := client.Fit(context.Background(), [][]float32{{1}, {2}}, [][]int{{1, 0}}, config.FitConfig{})
	var alignmentErr *errors.AlignmentError
	require.ErrorAs(t, err, &alignmentErr)
}

func TestFitServerError(t *testing.T) {
	config.SetPipelineConfigMap(&config.PipelineConfig{
		ServiceConfig: config.ServiceConfig{ErrorLoggingPercentage: 100},
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of capacity", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := clientForServer(t, server)
	_, err := client.Fit(context.Background(), [][]float32{{1}}, [][]int{{1, 0}}, config.FitConfig{})
	var serviceErr *errors.ExternalServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "trainer", serviceErr.Service)
}

func TestPredictSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/predict", r.URL.Path)
		var req PredictRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "model-ref-7", req.ModelRef)
		json.NewEncoder(w).Encode(PredictResponse{Probabilities: [][]float32{{0.2, 0.8}}})
	}))
	defer server.Close()

	client := clientForServer(t, server)
	probabilities, err := client.Predict(context.Background(), "model-ref-7", [][]float32{{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.2, 0.8}}, probabilities)
}

func TestPredictRejectsRowCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PredictResponse{Probabilities: [][]float32{{0.2, 0.8}}})
	}))
	defer server.Close()

	client := clientForServer(t, server)
	probabilities, err := client.Predict(context.Background(), "model-ref-7", [][]float32{{1}, {2}})
	assert.Nil(t, probabilities)
	var alignmentErr *errors.AlignmentError
	require.ErrorAs(t, err, &alignmentErr)
}
