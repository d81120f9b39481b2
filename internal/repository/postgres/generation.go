package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopsmart/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// currentGeneration reads the generation pointer for a scope. A scope with no
// pointer yet reads as generation 0, which matches an empty table.
func currentGeneration(ctx context.Context, db *gorm.DB, scope string) (int64, error) {
	var gen domain.BatchGeneration

	err := db.WithContext(ctx).Where("scope = ?", scope).First(&gen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read generation pointer for %s: %w", scope, err)
	}

	return gen.Generation, nil
}

// advanceGeneration bumps the pointer for a scope inside the caller's
// transaction and returns the new generation. The row is locked so two
// concurrent batch runs for the same scope serialize instead of racing.
func advanceGeneration(tx *gorm.DB, scope string) (int64, error) {
	var gen domain.BatchGeneration

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("scope = ?", scope).
		First(&gen).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("failed to lock generation pointer for %s: %w", scope, err)
		}
		gen = domain.BatchGeneration{Scope: scope}
	}

	gen.Generation++
	gen.UpdatedAt = time.Now().UTC()

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"generation", "updated_at"}),
	}).Create(&gen).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance generation pointer for %s: %w", scope, err)
	}

	return gen.Generation, nil
}
