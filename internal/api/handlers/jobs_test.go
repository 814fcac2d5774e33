package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/jobs"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/jobs/inmemory"
)

func seedJob(t *testing.T, store *inmemory.Store, id string, status jobs.JobStatus, createdAt time.Time) {
	t.Helper()

	err := store.SaveJob(context.Background(), &jobs.ExtractBatchJob{
		JobID:     id,
		Status:    status,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("SaveJob(%q) failed: %v", id, err)
	}
}

func TestGetJob(t *testing.T) {
	store := inmemory.NewStore()
	seedJob(t, store, "job-1", jobs.JobStatusCompleted, time.Now())

	h := NewJobsHandler(store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/job-1", nil)
	rec := httptest.NewRecorder()

	h.GetJob(rec, req, "job-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var job jobs.ExtractBatchJob
	if err := json.NewDecoder(rec.Body).Decode(&job); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if job.JobID != "job-1" {
		t.Errorf("JobID = %q", job.JobID)
	}
	if job.Status != jobs.JobStatusCompleted {
		t.Errorf("Status = %q", job.Status)
	}
}

func TestGetJob_NotFound(t *testing.T) {
	h := NewJobsHandler(inmemory.NewStore(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil)
	rec := httptest.NewRecorder()

	h.GetJob(rec, req, "missing")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}
}

func TestListJobs(t *testing.T) {
	store := inmemory.NewStore()
	base := time.Now()
	seedJob(t, store, "job-old", jobs.JobStatusCompleted, base.Add(-time.Hour))
	seedJob(t, store, "job-new", jobs.JobStatusPending, base)

	h := NewJobsHandler(store, zerolog.Nop())

	tests := []struct {
		name      string
		url       string
		wantCount int
		wantFirst string
	}{
		{"all jobs newest first", "/api/jobs", 2, "job-new"},
		{"filter by status", "/api/jobs?status=completed", 1, "job-old"},
		{"limit", "/api/jobs?limit=1", 1, "job-new"},
		{"offset", "/api/jobs?offset=1", 1, "job-old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()

			h.ListJobs(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rec.Code)
			}

			var body struct {
				Jobs  []*jobs.ExtractBatchJob `json:"jobs"`
				Count int                     `json:"count"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body.Count != tt.wantCount {
				t.Fatalf("count = %d, want %d", body.Count, tt.wantCount)
			}
			if len(body.Jobs) > 0 && body.Jobs[0].JobID != tt.wantFirst {
				t.Errorf("First job = %q, want %q", body.Jobs[0].JobID, tt.wantFirst)
			}
		})
	}
}
