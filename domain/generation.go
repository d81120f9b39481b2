package domain

import (
	"time"
)

// CREATE TABLE public.batch_generations (
//     scope      TEXT PRIMARY KEY,
//     generation BIGINT NOT NULL DEFAULT 0,
//     updated_at TIMESTAMPTZ
// );

const ScopeItemSimilarity = "item_similarity"

// TrendingScope names the generation pointer for one trending window.
func TrendingScope(window string) string {
	return "trending:" + window
}

// BatchGeneration is the read pointer for one batch-produced table. A batch
// run writes its rows under generation N+1 and flips the pointer in the same
// transaction, so readers see either the complete old table or the complete
// new one.
type BatchGeneration struct {
	Scope      string    `gorm:"primaryKey;column:scope;type:text"`
	Generation int64     `gorm:"column:generation;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (BatchGeneration) TableName() string {
	return "batch_generations"
}
