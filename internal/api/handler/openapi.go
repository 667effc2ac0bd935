package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"sigs.k8s.io/yaml"
)

// OpenAPIHandler serves the API description as JSON.
type OpenAPIHandler struct {
	spec []byte
}

// NewOpenAPIHandler converts the YAML document to JSON once, up front.
func NewOpenAPIHandler(yamlSpec []byte) (*OpenAPIHandler, error) {
	spec, err := yaml.YAMLToJSON(yamlSpec)
	if err != nil {
		return nil, fmt.Errorf("converting openapi document: %w", err)
	}
	return &OpenAPIHandler{spec: spec}, nil
}

// ServeHTTP handles GET /openapi.json.
func (h *OpenAPIHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.spec); err != nil {
		slog.Error("failed to write openapi response", "error", err)
	}
}
