package postgres

import (
	"context"
	"fmt"

	"shopsmart/domain"
	"shopsmart/pkg/logger"

	"gorm.io/gorm"
)

type TrendingRepository struct {
	DB *gorm.DB
}

func NewTrendingRepository(db *gorm.DB) *TrendingRepository {
	return &TrendingRepository{
		DB: db,
	}
}

// ReplaceWindow commits a full new score table for one window: rows are
// inserted under generation N+1 and the read pointer flips in the same
// transaction. An empty rows slice still flips the pointer, which is how
// "nothing is trending" is published. Superseded rows are pruned afterwards,
// outside the swap.
func (r *TrendingRepository) ReplaceWindow(ctx context.Context, window string, rows []domain.TrendingScore) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	scope := domain.TrendingScope(window)

	var next int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gen, err := advanceGeneration(tx, scope)
		if err != nil {
			return err
		}
		next = gen

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].TimeWindow = window
			rows[i].Generation = next
		}

		if err := tx.CreateInBatches(&rows, 1000).Error; err != nil {
			return fmt.Errorf("failed to insert trending scores: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace %s trending scores: %w", window, err)
	}

	if err := r.DB.WithContext(ctx).
		Where("time_window = ? AND generation < ?", window, next).
		Delete(&domain.TrendingScore{}).Error; err != nil {
		logger.Warn("failed to prune superseded trending scores", "window", window, "error", err)
	}

	return nil
}

// TopGlobal returns the highest-scored active products for a window, ordered
// by score with ascending product id as the tie break.
func (r *TrendingRepository) TopGlobal(ctx context.Context, window string, k int) ([]domain.ScoredProduct, error) {
	return r.top(ctx, window, 0, k)
}

// TopByCategory is TopGlobal restricted to one category.
func (r *TrendingRepository) TopByCategory(ctx context.Context, window string, categoryID uint64, k int) ([]domain.ScoredProduct, error) {
	return r.top(ctx, window, categoryID, k)
}

func (r *TrendingRepository) top(ctx context.Context, window string, categoryID uint64, k int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	gen, err := currentGeneration(ctx, r.DB, domain.TrendingScope(window))
	if err != nil {
		return nil, err
	}

	query := r.DB.WithContext(ctx).
		Table("trending_scores").
		Select("products.id AS product_id, products.external_id, products.name, products.price, products.image_url, products.category_id, trending_scores.score").
		Joins("JOIN products ON products.id = trending_scores.product_id").
		Where("trending_scores.time_window = ? AND trending_scores.generation = ?", window, gen).
		Where("products.is_active = ?", true)

	if categoryID != 0 {
		query = query.Where("trending_scores.category_id = ?", categoryID)
	}

	var rows []domain.ScoredProduct
	err = query.
		Order("trending_scores.score DESC, trending_scores.product_id ASC").
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query trending scores: %w", err)
	}

	return rows, nil
}
