package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/backend"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/logger"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pdftext"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/vendors"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "extract":
		runExtract(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Transaction Processor CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  extract   Extract transactions from statement PDFs against a vendor list")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runExtract(log zerolog.Logger) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	vendorPath := fs.String("vendors", "", "Path to vendor list file (.csv, .xls or .xlsx)")
	model := fs.String("model", string(backend.ModelGemini), "AI model: Gemini or DeepSeek")
	apiKey := fs.String("api-key", os.Getenv("API_KEY"), "Backend API key (or set API_KEY env)")
	timeout := fs.Duration("call-timeout", pipeline.DefaultCallTimeout, "Timeout per model backend call")
	fs.Parse(os.Args[2:])

	statements := fs.Args()
	if *vendorPath == "" || len(statements) == 0 {
		log.Fatal().Msg("Usage: cli extract -vendors FILE [-model Gemini|DeepSeek] statement.pdf ...")
	}
	if *apiKey == "" {
		log.Fatal().Msg("Error: an API key is required (-api-key or API_KEY env)")
	}

	selector, err := backend.ParseModelSelector(*model)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid model")
	}

	inv, err := backend.New(selector, *apiKey, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create backend")
	}

	vendorDoc, err := readFile(*vendorPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read vendor file")
	}

	docs := make([]pipeline.Document, 0, len(statements))
	for _, path := range statements {
		doc, err := readFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("Failed to read statement")
		}
		docs = append(docs, doc)
	}

	extractor := pipeline.New(pipeline.Config{
		Backend:     inv,
		Pages:       pdftext.Extractor{},
		Vendors:     vendors.Loader{},
		Logger:      log,
		CallTimeout: *timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	result, err := extractor.Run(ctx, docs, vendorDoc)
	if err != nil {
		log.Fatal().Err(err).Msg("Extraction failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
}

func readFile(path string) (pipeline.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Document{}, err
	}
	return pipeline.Document{Filename: path, Data: data}, nil
}
