package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/gordap/internal/api/middleware"
)

func loggedEngine(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	engine := gin.New()
	engine.Use(middleware.RequestLogger(logger))
	engine.GET("/api/v1/domain/:name", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"query": c.Param("name")})
	})
	engine.GET("/api/v1/boom", func(c *gin.Context) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream failed"})
	})
	return engine
}

func logRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestRequestLogger_SuccessAtInfo(t *testing.T) {
	var buf bytes.Buffer
	engine := loggedEngine(&buf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/domain/example.com?server=https://rdap.example/", nil)
	engine.ServeHTTP(w, req)

	record := logRecord(t, &buf)
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "api request", record["msg"])
	assert.Equal(t, "GET", record["method"])
	assert.Equal(t, "/api/v1/domain/example.com", record["path"])
	assert.EqualValues(t, http.StatusOK, record["status"])
	assert.Contains(t, record["params"], "server=")
	assert.Contains(t, record, "took_ms")
	assert.Contains(t, record, "bytes")
}

func TestRequestLogger_FailuresEscalateLevel(t *testing.T) {
	var buf bytes.Buffer
	engine := loggedEngine(&buf)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/boom", nil))
	assert.Equal(t, "ERROR", logRecord(t, &buf)["level"])

	buf.Reset()
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, "WARN", logRecord(t, &buf)["level"])
}

func TestRequestLogger_NilLoggerIsSilent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RequestLogger(nil))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
