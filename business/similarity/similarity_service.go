package similarity

import (
	"context"
	"fmt"
	"sort"

	"shopsmart/domain"
)

// categoryBoost reorders same-category candidates ahead of the rest; it never
// leaks into the returned score.
const categoryBoost = 1.2

// candidateHeadroom fetches extra candidates so boosted items can climb into
// the final k.
const candidateHeadroom = 3

type SimilarityReader interface {
	FindByProduct(ctx context.Context, productID uint64, limit int) ([]domain.ScoredProduct, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type Service struct {
	simRepo     SimilarityReader
	productRepo ProductRepository
}

func NewService(simRepo SimilarityReader, productRepo ProductRepository) *Service {
	return &Service{
		simRepo:     simRepo,
		productRepo: productRepo,
	}
}

// SimilarProducts lists the stored neighbors of a product. A missing source
// product is domain.ErrProductNotFound; a product with no qualifying
// neighbors is an empty list. Candidates sharing the source's category are
// boosted for ranking only; the returned score is always the stored
// similarity.
func (s *Service) SimilarProducts(ctx context.Context, productID uint64, k int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	source, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.simRepo.FindByProduct(ctx, productID, k*candidateHeadroom)
	if err != nil {
		return nil, err
	}

	type rankedCandidate struct {
		product   domain.ScoredProduct
		rankScore float64
	}

	ranked := make([]rankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		rankScore := c.Score
		if c.CategoryID == source.CategoryID {
			rankScore *= categoryBoost
		}
		ranked = append(ranked, rankedCandidate{product: c, rankScore: rankScore})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].rankScore > ranked[j].rankScore
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	out := make([]domain.ScoredProduct, 0, len(ranked))
	for i, rc := range ranked {
		p := rc.product
		p.Rank = i + 1
		out = append(out, p)
	}

	return out, nil
}
