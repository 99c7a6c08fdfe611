package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/remiblancher/qprov/pkg/property"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Handler serves introspection requests over one library context.
type Handler struct {
	ctx *registry.Context
}

// NewHandler creates a Handler over the given context.
func NewHandler(ctx *registry.Context) *Handler {
	return &Handler{ctx: ctx}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: registry.Version})
}

// Providers handles GET /api/v1/providers.
func (h *Handler) Providers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.ctx.Providers())
}

// Algorithms handles GET /api/v1/algorithms. Without an "op" query
// parameter it lists every operation; with one it lists that operation
// only.
func (h *Handler) Algorithms(w http.ResponseWriter, r *http.Request) {
	ops := registry.Operations()
	if v := r.URL.Query().Get("op"); v != "" {
		op, err := registry.ParseOperation(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_operation", err.Error())
			return
		}
		ops = []registry.Operation{op}
	}

	out := make(map[string][]registry.AlgorithmInfo, len(ops))
	for _, op := range ops {
		if records := h.ctx.Algorithms(op); len(records) > 0 {
			out[op.String()] = records
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// Fetch handles POST /api/v1/fetch: resolves the requested method and
// reports what it resolved to, releasing the handle immediately. It is a
// dry run for diagnosing property queries.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	op, err := registry.ParseOperation(req.Operation)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_operation", err.Error())
		return
	}

	m, err := h.ctx.Fetch(op, req.Algorithm, req.Properties)
	if err != nil {
		var synErr *property.SyntaxError
		switch {
		case errors.As(err, &synErr):
			respondError(w, http.StatusBadRequest, "invalid_properties", err.Error())
		case errors.Is(err, registry.ErrNoIdentifier):
			respondError(w, http.StatusBadRequest, "missing_algorithm", err.Error())
		case errors.Is(err, registry.ErrNotFound):
			respondError(w, http.StatusNotFound, "not_found", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		}
		return
	}
	defer m.Release()

	respondJSON(w, http.StatusOK, FetchResponse{
		Operation:  m.Operation().String(),
		Algorithm:  m.Name(),
		Provider:   m.Provider(),
		Properties: m.Properties().String(),
	})
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes a standardized error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, APIError{Code: code, Message: message})
}
