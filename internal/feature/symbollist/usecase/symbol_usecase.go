// Package usecase implements the business logic for tracked symbols.
package usecase

import (
	"context"
	"log/slog"

	"investing_backend/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for tracked symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	UpsertMany(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides the symbol list to the API and to the ingest job.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ActiveCodes returns the codes the ingest job refreshes.
func (u *SymbolUsecase) ActiveCodes(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveCodes(ctx)
}

// EnsureDefaults seeds entity.DefaultSymbols when the table is empty and
// returns the number of symbols written.
func (u *SymbolUsecase) EnsureDefaults(ctx context.Context) (int, error) {
	n, err := u.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	defaults := entity.DefaultSymbols()
	if err := u.repo.UpsertMany(ctx, defaults); err != nil {
		return 0, err
	}
	slog.Info("seeded default symbols", "count", len(defaults))
	return len(defaults), nil
}
