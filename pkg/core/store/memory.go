package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"contract_intel/pkg/models"
)

// MemoryRepo is the in-process ContractRepository. It copies records on the
// way in and out so callers never share mutable state with the store.
type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]*models.JobRecord
}

var _ ContractRepository = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string]*models.JobRecord)}
}

func (r *MemoryRepo) Save(_ context.Context, job *models.JobRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.UpdatedAt = time.Now().UTC()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (*models.JobRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (r *MemoryRepo) List(_ context.Context, opts ListOptions) ([]*models.JobRecord, error) {
	r.mu.RLock()
	var jobs []*models.JobRecord
	for _, job := range r.jobs {
		if opts.Status != "" && job.Status != opts.Status {
			continue
		}
		cp := *job
		jobs = append(jobs, &cp)
	}
	r.mu.RUnlock()

	// Descending order swaps the operands rather than negating: !less is
	// true in both directions for equal keys, which sort.Slice rejects.
	sort.Slice(jobs, func(i, j int) bool {
		if opts.Desc {
			return lessBy(opts.SortBy, jobs[j], jobs[i])
		}
		return lessBy(opts.SortBy, jobs[i], jobs[j])
	})

	if opts.Skip >= len(jobs) {
		return nil, nil
	}
	jobs = jobs[opts.Skip:]
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func lessBy(sortBy string, a, b *models.JobRecord) bool {
	switch sortBy {
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	case "score":
		return a.Score < b.Score
	case "filename":
		return strings.ToLower(a.Filename) < strings.ToLower(b.Filename)
	default:
		return a.UploadedAt.Before(b.UploadedAt)
	}
}
