package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"policy-reconciliation/internal/domain"
	"policy-reconciliation/internal/normalize"
	"policy-reconciliation/internal/policy"
	"policy-reconciliation/internal/suggest"
)

// ReconciliationUseCase orchestrates one reconciliation run: load both
// datasets, normalize them under their mappings, select the bank policy
// and match.
type ReconciliationUseCase struct {
	repo     DatasetRepository
	registry *policy.Registry
	logger   *zap.SugaredLogger
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo DatasetRepository, registry *policy.Registry, logger *zap.SugaredLogger) *ReconciliationUseCase {
	return &ReconciliationUseCase{repo: repo, registry: registry, logger: logger}
}

// ReconcileRequest carries everything one run needs. Params overrides the
// selected policy's defaults when non-nil.
type ReconcileRequest struct {
	PathA    string
	PathB    string
	MappingA domain.ColumnMapping
	MappingB domain.ColumnMapping
	Bank     string
	Params   *domain.MatchParameters
}

// Reconcile performs the full normalization and matching flow and returns
// the run report. Both files must load; a missing or unreadable side is a
// structural failure before any matching happens.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, req ReconcileRequest) (*domain.ReconciliationReport, error) {
	ctx, span := otel.Tracer("reconciliation").Start(ctx, "usecase.Reconcile")
	defer span.End()

	startedAt := time.Now().UTC()

	rawA, err := uc.repo.GetDataset(ctx, req.PathA)
	if err != nil {
		return nil, fmt.Errorf("could not load dataset A: %w", err)
	}
	rawB, err := uc.repo.GetDataset(ctx, req.PathB)
	if err != nil {
		return nil, fmt.Errorf("could not load dataset B: %w", err)
	}

	if err := normalize.ValidateMapping(rawA, req.MappingA); err != nil {
		return nil, fmt.Errorf("invalid mapping for dataset A: %w", err)
	}
	if err := normalize.ValidateMapping(rawB, req.MappingB); err != nil {
		return nil, fmt.Errorf("invalid mapping for dataset B: %w", err)
	}

	normA := normalize.Normalize(rawA, req.MappingA)
	normB := normalize.Normalize(rawB, req.MappingB)

	pol := uc.registry.Select(req.Bank)
	params := pol.Defaults
	if req.Params != nil {
		params = *req.Params
	}

	uc.logger.Infow("starting reconciliation",
		"bank", pol.Name,
		"rows_a", len(normA.Rows),
		"rows_b", len(normB.Rows),
		"amount_tolerance_pct", params.AmountTolerance,
	)

	summary, err := pol.Reconcile(normA, normB, params)
	if err != nil {
		uc.logger.Errorw("reconciliation failed", "bank", pol.Name, "error", err)
		return nil, fmt.Errorf("reconciliation failed for bank %s: %w", pol.Name, err)
	}

	report := &domain.ReconciliationReport{
		JobID:      uuid.New(),
		Bank:       pol.Name,
		ColumnsA:   normA.Columns,
		ColumnsB:   normB.Columns,
		Params:     params,
		Summary:    *summary,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}

	uc.logger.Infow("reconciliation finished",
		"job_id", report.JobID,
		"matches", summary.Matches,
		"mismatches", summary.Mismatches,
		"missing_in_a", summary.MissingInA,
		"missing_in_b", summary.MissingInB,
	)
	return report, nil
}

// SuggestMapping loads both files' headers and proposes a columnsA to
// columnsB mapping to pre-fill the mapping step.
func (uc *ReconciliationUseCase) SuggestMapping(ctx context.Context, pathA, pathB string) (map[string]string, error) {
	rawA, err := uc.repo.GetDataset(ctx, pathA)
	if err != nil {
		return nil, fmt.Errorf("could not load dataset A: %w", err)
	}
	rawB, err := uc.repo.GetDataset(ctx, pathB)
	if err != nil {
		return nil, fmt.Errorf("could not load dataset B: %w", err)
	}
	return suggest.Suggest(rawA.Columns, rawB.Columns), nil
}
