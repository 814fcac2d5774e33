package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/api/middleware"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/backend"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/jobs"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
)

// maxMultipartMemory is how much of a parsed multipart form is held in
// memory before spilling to disk.
const maxMultipartMemory = 32 << 20

// ProcessHandler handles the synchronous and asynchronous extraction
// endpoints. The page extractor and vendor loader are stateless and
// shared; the backend is built per request from the submitted model and
// credential.
type ProcessHandler struct {
	pages       pipeline.PageExtractor
	vendors     pipeline.VendorLoader
	publisher   jobs.Publisher
	callTimeout time.Duration
	log         zerolog.Logger
}

// NewProcessHandler creates a new extraction handler.
func NewProcessHandler(pages pipeline.PageExtractor, vendors pipeline.VendorLoader, publisher jobs.Publisher, callTimeout time.Duration, log zerolog.Logger) *ProcessHandler {
	return &ProcessHandler{
		pages:       pages,
		vendors:     vendors,
		publisher:   publisher,
		callTimeout: callTimeout,
		log:         log,
	}
}

// processRequest is the decoded multipart form of one extraction request.
type processRequest struct {
	model      backend.ModelSelector
	apiKey     string
	statements []pipeline.Document
	vendorFile pipeline.Document
}

// Process handles POST /api/process: run the extraction batch and return
// the result in the response.
func (h *ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	inv, err := backend.New(req.model, req.apiKey, h.log)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	extractor := pipeline.New(pipeline.Config{
		Backend:     inv,
		Pages:       h.pages,
		Vendors:     h.vendors,
		Logger:      h.log,
		CallTimeout: h.callTimeout,
	})

	result, err := extractor.Run(ctx, req.statements, req.vendorFile)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// ProcessAsync handles POST /api/process/async: enqueue the batch and
// return a job ID immediately.
func (h *ProcessHandler) ProcessAsync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	names := make([]string, len(req.statements))
	for i, doc := range req.statements {
		names[i] = doc.Filename
	}

	job := &jobs.ExtractBatchJob{
		Model:          req.model,
		APIKey:         req.apiKey,
		Statements:     req.statements,
		VendorFile:     req.vendorFile,
		StatementNames: names,
	}

	if err := h.publisher.PublishExtractBatch(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue extraction job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue extraction job")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Int("statements", len(names)).Msg("Extraction job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// decodeRequest parses and validates the multipart form. On failure it
// writes the error response and returns ok=false.
func (h *ProcessHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (processRequest, bool) {
	var req processRequest

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return req, false
	}

	model, err := backend.ParseModelSelector(r.FormValue("ai_model"))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	req.model = model
	req.apiKey = r.FormValue("api_key")

	statements := r.MultipartForm.File["statements"]
	if len(statements) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "No transaction files provided")
		return req, false
	}

	vendorFiles := r.MultipartForm.File["vendor_file"]
	if len(vendorFiles) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "No vendor file provided")
		return req, false
	}

	for _, fh := range statements {
		doc, err := readUpload(fh)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Failed to read upload "+fh.Filename)
			return req, false
		}
		req.statements = append(req.statements, doc)
	}

	vendorDoc, err := readUpload(vendorFiles[0])
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read upload "+vendorFiles[0].Filename)
		return req, false
	}
	req.vendorFile = vendorDoc

	return req, true
}

// writeRunError maps pipeline failures onto HTTP statuses. A vendor file
// we cannot parse is the client's problem; everything else that escapes
// the per-page isolation is reported as an internal error carrying the
// failure text.
func (h *ProcessHandler) writeRunError(w http.ResponseWriter, err error) {
	var dataErr *pipeline.DataFormatError
	if errors.As(err, &dataErr) {
		middleware.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.log.Error().Err(err).Msg("Extraction batch failed")
	middleware.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Internal Server Error: %s", err))
}

func readUpload(fh *multipart.FileHeader) (pipeline.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return pipeline.Document{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return pipeline.Document{}, err
	}

	return pipeline.Document{Filename: fh.Filename, Data: data}, nil
}

// RunJob executes a queued extraction batch. It is the jobs.JobHandler
// used by the API binary's worker.
func (h *ProcessHandler) RunJob(ctx context.Context, job *jobs.ExtractBatchJob) error {
	inv, err := backend.New(job.Model, job.APIKey, h.log)
	if err != nil {
		return err
	}

	extractor := pipeline.New(pipeline.Config{
		Backend:     inv,
		Pages:       h.pages,
		Vendors:     h.vendors,
		Logger:      h.log,
		CallTimeout: h.callTimeout,
	})

	result, err := extractor.Run(ctx, job.Statements, job.VendorFile)
	if err != nil {
		return err
	}

	job.Result = result
	return nil
}
