package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.events (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id    BIGINT NOT NULL,
//     product_id BIGINT NOT NULL,
//     event_type TEXT NOT NULL,
//     timestamp  TIMESTAMPTZ NOT NULL,
//     session_id TEXT,
//     metadata   JSONB
// );

const (
	EventTypeView      = "view"
	EventTypeAddToCart = "add_to_cart"
	EventTypePurchase  = "purchase"
)

type Event struct {
	ID        uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64            `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID uint64            `gorm:"column:product_id;not null;index" json:"product_id"`
	EventType string            `gorm:"column:event_type;type:text;not null" json:"event_type"`
	Timestamp time.Time         `gorm:"column:timestamp;not null;index" json:"timestamp"`
	SessionID string            `gorm:"column:session_id;type:text" json:"session_id,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// ProductEvent is an event row joined with the catalog: only active products
// survive the join. This is the input shape for every batch scoring pass.
type ProductEvent struct {
	UserID     uint64
	ProductID  uint64
	CategoryID uint64
	EventType  string
	Timestamp  time.Time
}

// Interaction is the aggregated strength of one (user, product) pair across
// all qualifying events. Recomputed per pipeline run, never persisted.
type Interaction struct {
	UserID    uint64
	ProductID uint64
	Weight    float64
}

// EventWeight maps an event type to its scoring weight. Unknown types count
// as a plain view.
func EventWeight(eventType string) float64 {
	switch eventType {
	case EventTypePurchase:
		return 5.0
	case EventTypeAddToCart:
		return 3.0
	default:
		return 1.0
	}
}
