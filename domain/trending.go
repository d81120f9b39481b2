package domain

import (
	"time"
)

// CREATE TABLE public.trending_scores (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id   BIGINT NOT NULL,
//     category_id  BIGINT NOT NULL,
//     time_window  TEXT NOT NULL,
//     score        NUMERIC NOT NULL,
//     event_count  BIGINT NOT NULL,
//     generation   BIGINT NOT NULL,
//     last_updated TIMESTAMPTZ NOT NULL
// );
// CREATE INDEX idx_trending_scores_lookup
//     ON trending_scores (time_window, generation, score DESC);

const (
	TimeWindow7d  = "7d"
	TimeWindow30d = "30d"
)

// TimeWindows are scored independently per pipeline run.
var TimeWindows = []string{TimeWindow7d, TimeWindow30d}

type TrendingScore struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   uint64    `gorm:"column:product_id;not null" json:"product_id"`
	CategoryID  uint64    `gorm:"column:category_id;not null" json:"category_id"`
	TimeWindow  string    `gorm:"column:time_window;type:text;not null" json:"time_window"`
	Score       float64   `gorm:"column:score;type:numeric;not null" json:"score"`
	EventCount  int64     `gorm:"column:event_count;not null" json:"event_count"`
	Generation  int64     `gorm:"column:generation;not null" json:"-"`
	LastUpdated time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (TrendingScore) TableName() string {
	return "trending_scores"
}
