package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/jobs"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/vendors"
)

type mockPageExtractor struct {
	ExtractPagesFunc func(data []byte) ([]pipeline.PageText, error)
}

func (m *mockPageExtractor) ExtractPages(data []byte) ([]pipeline.PageText, error) {
	return m.ExtractPagesFunc(data)
}

type mockVendorLoader struct {
	LoadFunc func(filename string, data []byte) ([]string, error)
}

func (m *mockVendorLoader) Load(filename string, data []byte) ([]string, error) {
	return m.LoadFunc(filename, data)
}

type mockPublisher struct {
	PublishFunc func(ctx context.Context, job *jobs.ExtractBatchJob) error
}

func (m *mockPublisher) PublishExtractBatch(ctx context.Context, job *jobs.ExtractBatchJob) error {
	return m.PublishFunc(ctx, job)
}

func (m *mockPublisher) Close() error { return nil }

// multipartRequest builds a POST with the given form values and file
// parts, mirroring what the web client submits.
func multipartRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("WriteField(%q) failed: %v", key, err)
		}
	}
	filenames := map[string]string{
		"statements":  "statement.pdf",
		"vendor_file": "vendors.csv",
	}
	for field, data := range files {
		name := filenames[field]
		if name == "" {
			name = field + ".dat"
		}
		part, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("CreateFormFile(%q) failed: %v", field, err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("Writing part %q failed: %v", field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Closing multipart writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/process", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestHandler(publisher jobs.Publisher) *ProcessHandler {
	return NewProcessHandler(
		&mockPageExtractor{ExtractPagesFunc: func(data []byte) ([]pipeline.PageText, error) {
			return nil, nil
		}},
		&mockVendorLoader{LoadFunc: func(filename string, data []byte) ([]string, error) {
			return nil, nil
		}},
		publisher,
		time.Second,
		zerolog.Nop(),
	)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	return body["error"]
}

func TestProcess_UnsupportedModel(t *testing.T) {
	h := newTestHandler(nil)

	req := multipartRequest(t,
		map[string]string{"ai_model": "GPT-4", "api_key": "k"},
		map[string][]byte{"statements": []byte("pdf"), "vendor_file": []byte("csv")},
	)
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); !strings.Contains(msg, "unsupported ai model") {
		t.Errorf("Unexpected error message: %q", msg)
	}
}

func TestProcess_NoStatements(t *testing.T) {
	h := newTestHandler(nil)

	req := multipartRequest(t,
		map[string]string{"ai_model": "Gemini", "api_key": "k"},
		map[string][]byte{"vendor_file": []byte("csv")},
	)
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "No transaction files provided" {
		t.Errorf("Unexpected error message: %q", msg)
	}
}

func TestProcess_NoVendorFile(t *testing.T) {
	h := newTestHandler(nil)

	req := multipartRequest(t,
		map[string]string{"ai_model": "Gemini", "api_key": "k"},
		map[string][]byte{"statements": []byte("pdf")},
	)
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "No vendor file provided" {
		t.Errorf("Unexpected error message: %q", msg)
	}
}

// A vendor file the loader cannot parse aborts the batch with 422 before
// any backend call is made.
func TestProcess_BadVendorFile(t *testing.T) {
	h := NewProcessHandler(
		&mockPageExtractor{ExtractPagesFunc: func(data []byte) ([]pipeline.PageText, error) {
			t.Fatal("ExtractPages should not be called when the vendor load fails")
			return nil, nil
		}},
		vendors.Loader{},
		nil,
		time.Second,
		zerolog.Nop(),
	)

	req := multipartRequest(t,
		map[string]string{"ai_model": "Gemini", "api_key": "k"},
		map[string][]byte{
			"statements":  []byte("pdf"),
			"vendor_file": []byte("Payee\n\"unclosed quote"),
		},
	)
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProcessAsync(t *testing.T) {
	var published *jobs.ExtractBatchJob
	publisher := &mockPublisher{PublishFunc: func(ctx context.Context, job *jobs.ExtractBatchJob) error {
		job.JobID = "test-job-id"
		job.Status = jobs.JobStatusPending
		published = job
		return nil
	}}

	h := newTestHandler(publisher)

	req := multipartRequest(t,
		map[string]string{"ai_model": "DeepSeek", "api_key": "secret"},
		map[string][]byte{"statements": []byte("pdf"), "vendor_file": []byte("csv")},
	)
	rec := httptest.NewRecorder()

	h.ProcessAsync(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["job_id"] != "test-job-id" {
		t.Errorf("job_id = %q", body["job_id"])
	}
	if body["status"] != string(jobs.JobStatusPending) {
		t.Errorf("status = %q", body["status"])
	}

	if published == nil {
		t.Fatal("Expected job to be published")
	}
	if published.APIKey != "secret" {
		t.Errorf("APIKey = %q", published.APIKey)
	}
	if len(published.StatementNames) != 1 {
		t.Errorf("StatementNames = %v", published.StatementNames)
	}
}
