package postgres

import (
	"context"
	"fmt"
	"time"

	"shopsmart/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		DB: db,
	}
}

func (r *EventRepository) Save(ctx context.Context, event *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// FindSince loads the interaction feed for the batch jobs: events newer than
// the cutoff, joined with the catalog so inactive products never enter a
// scoring pass.
func (r *EventRepository) FindSince(ctx context.Context, cutoff time.Time) ([]domain.ProductEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ProductEvent
	err := r.DB.WithContext(ctx).
		Table("events").
		Select("events.user_id, events.product_id, products.category_id, events.event_type, events.timestamp").
		Joins("JOIN products ON products.id = events.product_id").
		Where("events.timestamp >= ?", cutoff).
		Where("products.is_active = ?", true).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	return rows, nil
}

// FindRecentByUser returns the user's events most-recent-first.
func (r *EventRepository) FindRecentByUser(ctx context.Context, userID uint64, limit int) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.Event
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query user events: %w", err)
	}

	return events, nil
}
