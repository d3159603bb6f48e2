package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skylark-met/blend/internal/config"
	"github.com/skylark-met/blend/internal/weights"
)

// WeightsHandler serves the stateless weight operations: callers that manage
// their own presence bookkeeping can normalise and redistribute directly
// without creating a job.
type WeightsHandler struct {
	cfg *config.Config
}

func NewWeightsHandler(cfg *config.Config) *WeightsHandler {
	return &WeightsHandler{cfg: cfg}
}

type NormaliseRequest struct {
	Weights []float64   `json:"weights,omitempty"`
	Matrix  [][]float64 `json:"matrix,omitempty"`
	Axis    *int        `json:"axis,omitempty"`
}

type NormaliseResponse struct {
	Weights []float64   `json:"weights,omitempty"`
	Matrix  [][]float64 `json:"matrix,omitempty"`
}

func (h *WeightsHandler) Normalise(w http.ResponseWriter, r *http.Request) {
	var req NormaliseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Matrix != nil {
		axis := 0
		if req.Axis != nil {
			axis = *req.Axis
		}
		result, err := weights.NormaliseAlong(req.Matrix, axis)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, NormaliseResponse{Matrix: result})
		return
	}

	if len(req.Weights) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weights or matrix required"})
		return
	}
	result, err := weights.Normalise(req.Weights)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, NormaliseResponse{Weights: result})
}

type RedistributeRequest struct {
	Weights []float64 `json:"weights"`
	Present []float64 `json:"present"`
	Method  string    `json:"method,omitempty"`

	// PresentCSV is the legacy comma-separated indicator form.
	PresentCSV string `json:"present_csv,omitempty"`
}

type RedistributeResponse struct {
	Weights []float64 `json:"weights"`
	Method  string    `json:"method"`
}

func (h *WeightsHandler) Redistribute(w http.ResponseWriter, r *http.Request) {
	var req RedistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	present := req.Present
	if present == nil && req.PresentCSV != "" {
		parsed, err := weights.ParseExpectedValues(req.PresentCSV)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		present = parsed
	}

	methodName := req.Method
	if methodName == "" {
		methodName = h.cfg.Weights.DefaultMethod
	}
	method, err := weights.ParseMethod(methodName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := weights.Redistribute(req.Weights, present, method)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, weights.ErrNonePresent) {
			status = http.StatusConflict
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, RedistributeResponse{Weights: result, Method: method.String()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
