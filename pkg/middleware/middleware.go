package middleware

import (
	"encoding/json"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/metrics"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/set"
)

var (
	reqHeadersToLog *set.ThreadSafeSet
)

func InitMiddleware(headersToLog ...string) {
	reqHeadersToLog = set.NewThreadSafeSet()
	for _, header := range headersToLog {
		reqHeadersToLog.Add(strings.ToLower(header))
	}
}

// AccessLog logs one line per request: method, path, status, latency and the
// allow-listed request headers, joined by " | ".
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestHeaders, _ := json.Marshal(filterHeaders(c))

		c.Next()

		responseTime := time.Since(startTime)
		statusCode := c.Writer.Status()

		logVariables := []string{
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(statusCode),
			responseTime.String(),
			string(requestHeaders),
		}
		if statusCode >= 500 {
			logger.Error(strings.Join(logVariables, " | "), nil)
		} else {
			logger.Info(strings.Join(logVariables, " | "))
		}
		telemetryMiddleware(c.FullPath(), responseTime, statusCode)
	}
}

// Recovery converts a handler panic into a 500 instead of killing the
// process.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("path", c.FullPath()).
					Msgf("Recovered in recovery middleware with err: %v, stack: %s", r, string(debug.Stack()))
				c.AbortWithStatusJSON(500, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}

func filterHeaders(c *gin.Context) map[string][]string {

	filteredHeaders := make(map[string][]string)
	for k, v := range c.Request.Header {
		if reqHeadersToLog != nil && reqHeadersToLog.Contains(strings.ToLower(k)) {
			filteredHeaders[k] = v
		}
	}
	return filteredHeaders
}

func telemetryMiddleware(path string, responseTime time.Duration, statusCode int) {
	tags := []string{"api:" + path, "status:" + strconv.Itoa(statusCode)}
	metrics.Timing("transferflow.router.api.request.latency", responseTime, tags)
	metrics.Count("transferflow.router.api.request.total", 1, tags)
}
