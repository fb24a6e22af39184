package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"policy-reconciliation/internal/domain"
	"policy-reconciliation/internal/gateway"
	"policy-reconciliation/internal/policy"
	"policy-reconciliation/internal/usecase"
)

func main() {
	// Define command-line flags
	fileA := flag.String("file-a", "", "Path to dataset A (ledger) CSV/XLSX file (required)")
	fileB := flag.String("file-b", "", "Path to dataset B (statement) CSV/XLSX file (required)")
	mappingA := flag.String("mapping-a", "", "Path to JSON column mapping for dataset A (required unless -suggest)")
	mappingB := flag.String("mapping-b", "", "Path to JSON column mapping for dataset B (required unless -suggest)")
	bank := flag.String("bank", "GENERIC", "Bank identifier (ORIENTAL, MAGMA, RSA, ICICI or GENERIC)")
	configPath := flag.String("config", "", "Path to TOML config with per-bank parameter defaults (optional)")
	tolerance := flag.Float64("tolerance", -1, "Amount tolerance in whole percent, e.g. 1.0 means 1% (optional, overrides config)")
	suggestMode := flag.Bool("suggest", false, "Suggest a column mapping between the two files and exit")
	flag.Parse()

	if *fileA == "" || *fileB == "" {
		fmt.Println("Error: flags -file-a and -file-b are required.")
		flag.Usage()
		os.Exit(1)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	cfg, err := policy.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// --- Dependency Injection (Wiring the application) ---
	repo := gateway.NewFileDatasetRepository()
	registry := policy.NewRegistry(cfg)
	uc := usecase.NewReconciliationUseCase(repo, registry, zapLogger.Sugar())

	ctx := context.Background()

	if *suggestMode {
		suggestion, err := uc.SuggestMapping(ctx, *fileA, *fileB)
		if err != nil {
			log.Fatalf("Mapping suggestion failed: %v", err)
		}
		printJSON(suggestion)
		return
	}

	if *mappingA == "" || *mappingB == "" {
		fmt.Println("Error: flags -mapping-a and -mapping-b are required unless -suggest is set.")
		flag.Usage()
		os.Exit(1)
	}

	mapA, err := loadMapping(*mappingA)
	if err != nil {
		log.Fatalf("Error loading mapping A: %v", err)
	}
	mapB, err := loadMapping(*mappingB)
	if err != nil {
		log.Fatalf("Error loading mapping B: %v", err)
	}

	req := usecase.ReconcileRequest{
		PathA:    *fileA,
		PathB:    *fileB,
		MappingA: mapA,
		MappingB: mapB,
		Bank:     *bank,
	}
	if *tolerance >= 0 {
		params := registry.Select(*bank).Defaults
		params.AmountTolerance = *tolerance
		req.Params = &params
	}

	report, err := uc.Reconcile(ctx, req)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}
	printJSON(report)
}

// loadMapping reads a raw-column to canonical-field mapping from a JSON
// object file, e.g. {"Policy No": "Policy Number", "Premium": "Gross Premium"}.
func loadMapping(path string) (domain.ColumnMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	var mapping domain.ColumnMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("invalid mapping data in %s: %w", path, err)
	}
	return mapping, nil
}

func printJSON(v any) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON output: %v", err)
	}
	fmt.Println(string(output))
}
