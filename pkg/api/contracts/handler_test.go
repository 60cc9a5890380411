package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"contract_intel/pkg/core/pipeline"
	"contract_intel/pkg/core/store"
	"contract_intel/pkg/models"
)

const sampleContract = `SERVICE AGREEMENT

This Service Agreement is made between Acme Solutions Inc. and Globex Corporation.

Total Contract Value: $120,000
Payment Terms: Net 30, invoiced monthly.
The service shall maintain 99.9% uptime.
Billing Email: billing@globex.com`

func newTestHandler(t *testing.T) (*Handler, *mux.Router, store.ContractRepository) {
	t.Helper()
	repo := store.NewMemoryRepo()
	worker := pipeline.NewWorker(pipeline.New(nil, pipeline.Config{}, nil), repo, nil, nil)
	h := NewHandler(worker, repo, nil, nil)
	r := mux.NewRouter()
	h.Register(r)
	return h, r, repo
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	fw.Write([]byte(content))
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func doJSON(t *testing.T, r *mux.Router, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, body
}

// submitAndProcess registers a job and runs it synchronously.
func submitAndProcess(t *testing.T, h *Handler, filename, content string) *models.JobRecord {
	t.Helper()
	job, err := h.Worker.Submit(context.Background(), filename, []byte(content))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	h.Worker.Process(context.Background(), job, []byte(content))
	return job
}

func TestHandleUpload(t *testing.T) {
	_, r, repo := newTestHandler(t)

	buf, contentType := multipartBody(t, "msa.txt", sampleContract)
	req := httptest.NewRequest("POST", "/contracts/upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatal("upload response missing job id")
	}
	if body["filename"] != "msa.txt" {
		t.Errorf("filename = %v", body["filename"])
	}

	// Submit persists before the response, so the job is queryable at once.
	if _, err := repo.Get(context.Background(), id); err != nil {
		t.Errorf("uploaded job not in repository: %v", err)
	}

	// Background processing should finish quickly for a small document.
	deadline := time.Now().Add(5 * time.Second)
	for {
		job, err := repo.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if job.Status == models.StatusCompleted || job.Status == models.StatusFailed {
			if job.Status != models.StatusCompleted {
				t.Fatalf("job failed: %s", job.Error)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job still %s after deadline", job.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleUpload_BadRequests(t *testing.T) {
	_, r, _ := newTestHandler(t)

	t.Run("no multipart form", func(t *testing.T) {
		rec, _ := doJSON(t, r, "POST", "/contracts/upload")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		buf, contentType := multipartBody(t, "empty.txt", "")
		req := httptest.NewRequest("POST", "/contracts/upload", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandleStatusAndGet(t *testing.T) {
	h, r, _ := newTestHandler(t)
	job := submitAndProcess(t, h, "msa.txt", sampleContract)

	rec, body := doJSON(t, r, "GET", "/contracts/"+job.ID+"/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["status"] != string(models.StatusCompleted) {
		t.Errorf("job status = %v", body["status"])
	}
	if body["progress"] != float64(100) {
		t.Errorf("progress = %v, want 100", body["progress"])
	}

	rec, body = doJSON(t, r, "GET", "/contracts/"+job.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	if body["id"] != job.ID {
		t.Errorf("id = %v", body["id"])
	}
	if _, ok := body["parsed_data"]; !ok {
		t.Error("full record should include parsed data")
	}

	rec, _ = doJSON(t, r, "GET", "/contracts/no-such-id/status")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing job status = %d, want 404", rec.Code)
	}
}

func TestHandleScore(t *testing.T) {
	h, r, _ := newTestHandler(t)
	job := submitAndProcess(t, h, "msa.txt", sampleContract)

	rec, body := doJSON(t, r, "GET", "/contracts/"+job.ID+"/score")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	for _, key := range []string{"overall_score", "component_scores", "gaps"} {
		if _, ok := body[key]; !ok {
			t.Errorf("breakdown missing %q", key)
		}
	}
}

func TestHandleScore_NotProcessed(t *testing.T) {
	h, r, _ := newTestHandler(t)

	job, err := h.Worker.Submit(context.Background(), "msa.txt", []byte(sampleContract))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	rec, _ := doJSON(t, r, "GET", "/contracts/"+job.ID+"/score")
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestHandleList(t *testing.T) {
	h, r, _ := newTestHandler(t)
	submitAndProcess(t, h, "alpha.txt", sampleContract)
	submitAndProcess(t, h, "bravo.txt", sampleContract)

	rec, body := doJSON(t, r, "GET", "/contracts?sort_by=filename&order=asc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["count"] != float64(2) {
		t.Fatalf("count = %v, want 2", body["count"])
	}
	list, _ := body["contracts"].([]any)
	if len(list) != 2 {
		t.Fatalf("contracts = %d entries, want 2", len(list))
	}
	first, _ := list[0].(map[string]any)
	if first["filename"] != "alpha.txt" {
		t.Errorf("first filename = %v, want alpha.txt", first["filename"])
	}
	if _, ok := first["parsed_data"]; ok {
		t.Error("list entries should not carry parsed payloads")
	}

	rec, body = doJSON(t, r, "GET", "/contracts?status=pending")
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered status = %d, want 200", rec.Code)
	}
	if body["count"] != float64(0) {
		t.Errorf("pending count = %v, want 0", body["count"])
	}
}

func TestHandleDelete(t *testing.T) {
	h, r, repo := newTestHandler(t)
	job := submitAndProcess(t, h, "msa.txt", sampleContract)

	rec, _ := doJSON(t, r, "DELETE", "/contracts/"+job.ID)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if _, err := repo.Get(context.Background(), job.ID); err == nil {
		t.Error("job should be gone after delete")
	}

	rec, _ = doJSON(t, r, "DELETE", "/contracts/"+job.ID)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestHandleDownload_NoStore(t *testing.T) {
	h, r, _ := newTestHandler(t)
	job := submitAndProcess(t, h, "msa.txt", sampleContract)

	rec, _ := doJSON(t, r, "GET", "/contracts/"+job.ID+"/download")
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}
