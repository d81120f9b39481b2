package domain

import (
	"time"
)

// CREATE TABLE public.item_similarity (
//     id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id          BIGINT NOT NULL,
//     similar_product_id  BIGINT NOT NULL,
//     similarity_score    NUMERIC NOT NULL,
//     co_occurrence_count BIGINT NOT NULL,
//     generation          BIGINT NOT NULL,
//     last_updated        TIMESTAMPTZ NOT NULL
// );
// CREATE INDEX idx_item_similarity_lookup
//     ON item_similarity (product_id, generation, similarity_score DESC);

// ItemSimilarity is a directed edge: product_id -> similar_product_id. Every
// stored edge already passed the co-occurrence filter and top-K pruning.
type ItemSimilarity struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID         uint64    `gorm:"column:product_id;not null" json:"product_id"`
	SimilarProductID  uint64    `gorm:"column:similar_product_id;not null" json:"similar_product_id"`
	SimilarityScore   float64   `gorm:"column:similarity_score;type:numeric;not null" json:"similarity_score"`
	CoOccurrenceCount int       `gorm:"column:co_occurrence_count;not null" json:"co_occurrence_count"`
	Generation        int64     `gorm:"column:generation;not null" json:"-"`
	LastUpdated       time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (ItemSimilarity) TableName() string {
	return "item_similarity"
}
