package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driving"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// Routes served by the handler.
const (
	PathExtensions = "/api/extensions"
	PathGoModules  = "/api/go-modules"
	PathHealth     = "/healthz"
)

// CORS header values attached to every discovery response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, OPTIONS"
	AllowHeaders = "Content-Type"
)

// ErrorPrefix starts every plain-text error body.
const ErrorPrefix = "Error fetching data: "

// Handler translates HTTP requests into discovery pipeline runs.
type Handler struct {
	discovery driving.DiscoveryService
}

// NewHandler creates a handler backed by the discovery service.
func NewHandler(discovery driving.DiscoveryService) *Handler {
	return &Handler{discovery: discovery}
}

// Routes returns the router for all endpoints.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(PathExtensions, discoveryEndpoint(h.discovery.ListExtensionRepositories))
	mux.Handle(PathGoModules, discoveryEndpoint(h.discovery.ListModuleRepositories))
	mux.HandleFunc(PathHealth, handleHealth)
	return mux
}

// discoveryEndpoint serves one pipeline as a JSON array.
func discoveryEndpoint(list func(context.Context) ([]domain.Repository, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w.Header())

		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusNoContent)
			return
		case http.MethodGet, http.MethodHead:
		default:
			w.Header().Set("Allow", AllowMethods)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		repos, err := list(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if repos == nil {
			repos = []domain.Repository{}
		}

		writeJSON(w, http.StatusOK, repos)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func setCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", AllowOrigin)
	h.Set("Access-Control-Allow-Methods", AllowMethods)
	h.Set("Access-Control-Allow-Headers", AllowHeaders)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, ErrorPrefix+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError reports a pipeline failure as a plain-text 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(ErrorPrefix + err.Error()))
}
