package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"contract_intel/pkg/core/store"
	"contract_intel/pkg/models"
)

// Progress checkpoints reported while a job moves through the pipeline.
const (
	progressAccepted  = 10
	progressExtracted = 50
	progressScored    = 80
	progressDone      = 100
)

const defaultMaxRetries = 2

// Worker drives contract jobs through the pipeline and records their
// lifecycle in the repository. Uploaded documents go to the object store
// when one is configured.
type Worker struct {
	Orch   *Orchestrator
	Repo   store.ContractRepository
	Docs   *store.DocumentStore // optional
	Logger *slog.Logger
}

func NewWorker(orch *Orchestrator, repo store.ContractRepository, docs *store.DocumentStore, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{Orch: orch, Repo: repo, Docs: docs, Logger: logger}
}

// Submit registers a new pending job for an uploaded document and returns
// the record. Processing happens separately via Process.
func (w *Worker) Submit(ctx context.Context, filename string, data []byte) (*models.JobRecord, error) {
	now := time.Now().UTC()
	job := &models.JobRecord{
		ID:         uuid.NewString(),
		Filename:   filename,
		Status:     models.StatusPending,
		Progress:   0,
		UploadedAt: now,
		UpdatedAt:  now,
		FileSize:   int64(len(data)),
		MaxRetries: defaultMaxRetries,
	}
	if err := w.Repo.Save(ctx, job); err != nil {
		return nil, err
	}
	if w.Docs != nil {
		if err := w.Docs.Put(ctx, job.ID, data, "application/octet-stream"); err != nil {
			// The job can still process from the in-flight bytes.
			w.Logger.Warn("document store write failed", "job", job.ID, "error", err)
		}
	}
	return job, nil
}

// Process runs a submitted job to completion, retrying transient failures
// with linear backoff up to the job's retry budget.
func (w *Worker) Process(ctx context.Context, job *models.JobRecord, data []byte) {
	for {
		err := w.processOnce(ctx, job, data)
		if err == nil {
			return
		}

		job.RetryCount++
		job.Error = err.Error()
		if job.RetryCount > job.MaxRetries {
			job.Status = models.StatusFailed
			w.save(ctx, job)
			w.Logger.Error("job failed permanently",
				"job", job.ID, "retries", job.RetryCount-1, "error", err)
			return
		}

		w.Logger.Warn("job attempt failed, retrying",
			"job", job.ID, "attempt", job.RetryCount, "error", err)
		w.save(ctx, job)

		select {
		case <-ctx.Done():
			job.Status = models.StatusFailed
			job.Error = ctx.Err().Error()
			w.save(ctx, job)
			return
		case <-time.After(time.Duration(job.RetryCount) * time.Second):
		}
	}
}

func (w *Worker) processOnce(ctx context.Context, job *models.JobRecord, data []byte) error {
	job.Status = models.StatusProcessing
	job.Progress = progressAccepted
	w.save(ctx, job)

	result, err := w.Orch.ProcessDocument(ctx, job.Filename, data)
	if err != nil {
		return err
	}
	job.Progress = progressExtracted
	w.save(ctx, job)

	job.Parsed = result.Data
	job.Score = result.Score
	job.Gaps = result.Gaps
	job.Progress = progressScored
	w.save(ctx, job)

	job.Status = models.StatusCompleted
	job.Progress = progressDone
	job.Error = ""
	w.save(ctx, job)
	return nil
}

func (w *Worker) save(ctx context.Context, job *models.JobRecord) {
	if err := w.Repo.Save(ctx, job); err != nil {
		w.Logger.Error("job save failed", "job", job.ID, "error", err)
	}
}
