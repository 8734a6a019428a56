package server

import "net/http"

// ServiceName identifies the API in the root and health payloads.
const ServiceName = "Library Management API"

// InfoHandler serves the root and health endpoints.
type InfoHandler struct {
	version string
}

func NewInfoHandler(version string) *InfoHandler {
	return &InfoHandler{version: version}
}

func (h *InfoHandler) Routes() []string {
	return []string{"GET /{$}", "GET /health"}
}

func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case "GET /health":
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": ServiceName})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Welcome to the " + ServiceName,
			"version": h.version,
			"routes":  append(h.Routes(), booksRoutes...),
		})
	}
}
