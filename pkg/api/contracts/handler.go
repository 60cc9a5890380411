// Package contracts exposes the contract processing pipeline over HTTP:
// upload a document, poll its status, fetch the parsed data, the score
// breakdown, the original document, and list processed contracts.
package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"contract_intel/pkg/core/pipeline"
	"contract_intel/pkg/core/scoring"
	"contract_intel/pkg/core/store"
	"contract_intel/pkg/models"
)

// maxUploadBytes bounds a single uploaded contract document.
const maxUploadBytes = 20 << 20 // 20 MiB

type Handler struct {
	Worker *pipeline.Worker
	Repo   store.ContractRepository
	Docs   *store.DocumentStore // optional
	Logger *slog.Logger
}

func NewHandler(worker *pipeline.Worker, repo store.ContractRepository, docs *store.DocumentStore, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Worker: worker, Repo: repo, Docs: docs, Logger: logger}
}

// Register mounts the contract routes on the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/contracts/upload", h.HandleUpload).Methods("POST")
	r.HandleFunc("/contracts", h.HandleList).Methods("GET")
	r.HandleFunc("/contracts/{id}/status", h.HandleStatus).Methods("GET")
	r.HandleFunc("/contracts/{id}/score", h.HandleScore).Methods("GET")
	r.HandleFunc("/contracts/{id}/download", h.HandleDownload).Methods("GET")
	r.HandleFunc("/contracts/{id}", h.HandleGet).Methods("GET")
	r.HandleFunc("/contracts/{id}", h.HandleDelete).Methods("DELETE")
}

// HandleUpload accepts a multipart contract document, registers a job and
// processes it in the background. Responds 202 with the job ID.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}
	if len(data) > maxUploadBytes {
		http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}
	if len(data) == 0 {
		http.Error(w, "empty file", http.StatusBadRequest)
		return
	}

	job, err := h.Worker.Submit(r.Context(), header.Filename, data)
	if err != nil {
		h.Logger.Error("job submit failed", "filename", header.Filename, "error", err)
		http.Error(w, "failed to register job", http.StatusInternalServerError)
		return
	}

	// Processing continues after the response; the request context would be
	// canceled on return.
	go h.Worker.Process(context.WithoutCancel(r.Context()), job, data)

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]any{
		"id":       job.ID,
		"filename": job.Filename,
		"status":   job.Status,
	})
}

// HandleStatus reports job status and progress.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"id":       job.ID,
		"status":   job.Status,
		"progress": job.Progress,
		"error":    job.Error,
	})
}

// HandleGet returns the full job record including parsed data.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	writeJSON(w, job)
}

// HandleScore returns the per-category score breakdown for a completed job.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	if job.Status != models.StatusCompleted || job.Parsed == nil {
		http.Error(w, "contract not yet processed", http.StatusConflict)
		return
	}
	writeJSON(w, scoring.GetScoreBreakdown(job.Parsed.ToMap()))
}

// HandleDownload streams the original uploaded document.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if h.Docs == nil {
		http.Error(w, "document storage not configured", http.StatusNotImplemented)
		return
	}
	job, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	data, err := h.Docs.Get(r.Context(), job.ID)
	if err != nil {
		h.Logger.Error("document fetch failed", "job", job.ID, "error", err)
		http.Error(w, "document not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+job.Filename+`"`)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

// HandleList returns jobs with pagination, status filter and sorting.
// Query params: skip, limit, status, sort_by, order (asc|desc).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := store.ListOptions{
		Skip:   intParam(q.Get("skip"), 0),
		Limit:  intParam(q.Get("limit"), 20),
		Status: models.JobStatus(q.Get("status")),
		SortBy: q.Get("sort_by"),
		Desc:   q.Get("order") != "asc",
	}
	jobs, err := h.Repo.List(r.Context(), opts)
	if err != nil {
		h.Logger.Error("job list failed", "error", err)
		http.Error(w, "failed to list contracts", http.StatusInternalServerError)
		return
	}
	// Listings stay light: strip parsed payloads.
	summaries := make([]map[string]any, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, map[string]any{
			"id":          job.ID,
			"filename":    job.Filename,
			"status":      job.Status,
			"progress":    job.Progress,
			"score":       job.Score,
			"gap_count":   len(job.Gaps),
			"uploaded_at": job.UploadedAt,
			"updated_at":  job.UpdatedAt,
		})
	}
	writeJSON(w, map[string]any{"contracts": summaries, "count": len(summaries)})
}

// HandleDelete removes a job and its stored document.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("job delete failed", "job", id, "error", err)
		http.Error(w, "failed to delete contract", http.StatusInternalServerError)
		return
	}
	if h.Docs != nil {
		if err := h.Docs.Delete(r.Context(), id); err != nil {
			h.Logger.Warn("document delete failed", "job", id, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadJob(w http.ResponseWriter, r *http.Request) (*models.JobRecord, bool) {
	id := mux.Vars(r)["id"]
	job, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
		} else {
			h.Logger.Error("job load failed", "job", id, "error", err)
			http.Error(w, "failed to load contract", http.StatusInternalServerError)
		}
		return nil, false
	}
	return job, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
