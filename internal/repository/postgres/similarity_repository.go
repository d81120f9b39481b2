package postgres

import (
	"context"
	"fmt"

	"shopsmart/domain"
	"shopsmart/pkg/logger"

	"gorm.io/gorm"
)

type SimilarityRepository struct {
	DB *gorm.DB
}

func NewSimilarityRepository(db *gorm.DB) *SimilarityRepository {
	return &SimilarityRepository{
		DB: db,
	}
}

// ReplaceAll commits a full new similarity table: same generation-swap policy
// as the trending repository, one pointer for the whole table.
func (r *SimilarityRepository) ReplaceAll(ctx context.Context, rows []domain.ItemSimilarity) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var next int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gen, err := advanceGeneration(tx, domain.ScopeItemSimilarity)
		if err != nil {
			return err
		}
		next = gen

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].Generation = next
		}

		if err := tx.CreateInBatches(&rows, 1000).Error; err != nil {
			return fmt.Errorf("failed to insert similarity entries: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace item similarity table: %w", err)
	}

	if err := r.DB.WithContext(ctx).
		Where("generation < ?", next).
		Delete(&domain.ItemSimilarity{}).Error; err != nil {
		logger.Warn("failed to prune superseded similarity entries", "error", err)
	}

	return nil
}

// FindByProduct returns the stored neighbors of a product joined with the
// catalog, active products only, highest similarity first. Score carries the
// stored similarity_score.
func (r *SimilarityRepository) FindByProduct(ctx context.Context, productID uint64, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	gen, err := currentGeneration(ctx, r.DB, domain.ScopeItemSimilarity)
	if err != nil {
		return nil, err
	}

	var rows []domain.ScoredProduct
	err = r.DB.WithContext(ctx).
		Table("item_similarity").
		Select("products.id AS product_id, products.external_id, products.name, products.price, products.image_url, products.category_id, item_similarity.similarity_score AS score").
		Joins("JOIN products ON products.id = item_similarity.similar_product_id").
		Where("item_similarity.product_id = ? AND item_similarity.generation = ?", productID, gen).
		Where("products.is_active = ?", true).
		Order("item_similarity.similarity_score DESC, item_similarity.similar_product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query item similarity: %w", err)
	}

	return rows, nil
}
