package trending

import (
	"context"
	"fmt"

	"shopsmart/domain"
)

// TrendingReader is the read side of the score table.
type TrendingReader interface {
	TopGlobal(ctx context.Context, window string, k int) ([]domain.ScoredProduct, error)
	TopByCategory(ctx context.Context, window string, categoryID uint64, k int) ([]domain.ScoredProduct, error)
}

type Service struct {
	repo TrendingReader
}

func NewService(repo TrendingReader) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GlobalTrending(ctx context.Context, k int, window string) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	rows, err := s.repo.TopGlobal(ctx, window, k)
	if err != nil {
		return nil, err
	}

	return withRanks(rows), nil
}

func (s *Service) TrendingByCategory(ctx context.Context, categoryID uint64, k int, window string) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	rows, err := s.repo.TopByCategory(ctx, window, categoryID, k)
	if err != nil {
		return nil, err
	}

	return withRanks(rows), nil
}

func withRanks(rows []domain.ScoredProduct) []domain.ScoredProduct {
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}
