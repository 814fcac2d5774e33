package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/api/handlers"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/api/middleware"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/jobs"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/jobs/inmemory"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/logger"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pdftext"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/vendors"
)

func main() {
	// .env is optional; explicit environment wins.
	_ = godotenv.Load()

	var (
		port        = flag.String("port", envOr("PORT", "8000"), "HTTP server port")
		callTimeout = flag.Duration("call-timeout", pipeline.DefaultCallTimeout, "Timeout per model backend call")
		maxBody     = flag.Int64("max-body", 64<<20, "Maximum request body size in bytes")
	)
	flag.Parse()

	log := logger.New()

	// Initialize job infrastructure for async extraction.
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(16, jobStore)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	// Initialize handlers. Page extraction and vendor loading are
	// stateless; the model backend is built per request.
	processHandler := handlers.NewProcessHandler(pdftext.Extractor{}, vendors.Loader{}, jobQueue, *callTimeout, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	jobHandler := func(ctx context.Context, job *jobs.ExtractBatchJob) error {
		log.Info().
			Str("job_id", job.JobID).
			Str("model", string(job.Model)).
			Int("statements", len(job.Statements)).
			Msg("Processing extraction job")

		if err := processHandler.RunJob(ctx, job); err != nil {
			log.Error().Err(err).Str("job_id", job.JobID).Msg("Extraction job failed")
			return err
		}

		log.Info().Str("job_id", job.JobID).Msg("Extraction job completed")
		return nil
	}

	go func() {
		log.Info().Msg("Starting job worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job worker stopped with error")
		}
	}()

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/process", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			processHandler.Process(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/process/async", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			processHandler.ProcessAsync(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(
					middleware.MaxBodyBytes(*maxBody)(mux),
				),
			),
		),
	)

	server := &http.Server{
		Addr:    ":" + *port,
		Handler: handler,
		// Reads include multi-megabyte statement uploads; writes wait
		// on one backend call per page.
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs.
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
