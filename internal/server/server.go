package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/pipeline"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/configs"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/middleware"
)

const productionEnv = "prod"

// ScoreRequest carries raw payloads to score against a pipeline's trained
// model. encoding/json expects each instance base64 encoded.
type ScoreRequest struct {
	Instances [][]byte `json:"instances"`
}

type ScoreResponse struct {
	Probabilities [][]float32 `json:"probabilities"`
}

// InitServer wires the HTTP routes and blocks serving on the configured port.
func InitServer(appConfigs *configs.AppConfigs) {
	if appConfigs.Configs.ApplicationEnv == productionEnv {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(), middleware.AccessLog())

	router.GET("/health/self", healthCheck)
	router.POST("/v1/pipeline/:id/run", runPipeline)
	router.POST("/v1/pipeline/:id/score", score)

	addr := fmt.Sprintf(":%d", appConfigs.Configs.ApplicationPort)
	logger.Info(fmt.Sprintf("Starting HTTP server on %s", addr))
	if err := router.Run(addr); err != nil {
		logger.Panic("HTTP server exited", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func runPipeline(c *gin.Context) {
	result, err := pipeline.Instance().RunPipeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid score request: %v", err)})
		return
	}
	if len(req.Instances) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score request carries no instances"})
		return
	}

	probabilities, err := pipeline.Instance().Score(c.Request.Context(), c.Param("id"), req.Instances)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ScoreResponse{Probabilities: probabilities})
}

func statusForError(err error) int {
	switch err.(type) {
	case *errors.DataNotFoundError:
		return http.StatusNotFound
	case *errors.ExternalServiceError:
		return http.StatusBadGateway
	case *errors.IOFailure, *errors.AlignmentError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
