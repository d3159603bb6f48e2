package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skylark-met/blend/internal/config"
	"github.com/skylark-met/blend/internal/store"
)

type JobsHandler struct {
	store store.Store
	cfg   *config.Config
}

func NewJobsHandler(s store.Store, cfg *config.Config) *JobsHandler {
	return &JobsHandler{store: s, cfg: cfg}
}

type CreateJobRequest struct {
	Group          string    `json:"group,omitempty"`
	Coordinate     string    `json:"coordinate"`
	Method         string    `json:"method,omitempty"`
	RawWeights     []float64 `json:"raw_weights"`
	ExpectedValues []float64 `json:"expected_values,omitempty"`
	ExpectedUnit   string    `json:"expected_unit,omitempty"`
	ActualValues   []float64 `json:"actual_values"`
	CoordUnit      string    `json:"coord_unit,omitempty"`
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Coordinate == "" && req.Group == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "coordinate or group required"})
		return
	}
	if len(req.RawWeights) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "raw_weights required"})
		return
	}
	if len(req.ActualValues) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "actual_values required"})
		return
	}

	job := &store.WeightJob{
		Group:          req.Group,
		Coordinate:     req.Coordinate,
		Method:         req.Method,
		RawWeights:     req.RawWeights,
		ExpectedValues: req.ExpectedValues,
		ExpectedUnit:   req.ExpectedUnit,
		ActualValues:   req.ActualValues,
		CoordUnit:      req.CoordUnit,
		Status:         store.StatusPending,
	}
	if job.Method == "" {
		job.Method = h.cfg.Weights.DefaultMethod
	}

	if err := h.store.CreateJob(r.Context(), job); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.JobFilter{
		Group: r.URL.Query().Get("group"),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := store.JobStatus(v)
		filter.Status = &status
	}
	filter.Limit = 100

	jobs, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if jobs == nil {
		jobs = []*store.WeightJob{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid job id"})
		return
	}

	job, err := h.store.GetJob(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}
	writeJSON(w, http.StatusOK, job)
}
