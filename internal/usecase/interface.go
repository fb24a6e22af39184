package usecase

import (
	"context"

	"policy-reconciliation/internal/domain"
)

// DatasetRepository defines the interface for fetching raw tabular data.
// The usecase layer depends on this interface, not on a concrete
// implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go DatasetRepository
type DatasetRepository interface {
	GetDataset(ctx context.Context, path string) (domain.RawDataset, error)
}
