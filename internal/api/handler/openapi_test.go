package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/internal/api/handler"
)

func TestOpenAPIHandler_ServesJSON(t *testing.T) {
	// Arrange
	h, err := handler.NewOpenAPIHandler([]byte("openapi: 3.0.3\ninfo:\n  title: worktrack\n  version: \"1\"\npaths: {}\n"))
	require.NoError(t, err)
	w := httptest.NewRecorder()

	// Act
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Equal(t, "worktrack", doc["info"].(map[string]any)["title"])
}

func TestNewOpenAPIHandler_InvalidYAML(t *testing.T) {
	_, err := handler.NewOpenAPIHandler([]byte("openapi: [unclosed"))
	assert.Error(t, err)
}
