package domain

// Strategy tags every recommendation result with the cascade step that
// produced it.
type Strategy string

const (
	StrategyPersonalized      Strategy = "personalized"
	StrategyColdStartCategory Strategy = "cold_start_category"
	StrategyTrending          Strategy = "trending"
)

// ScoredProduct is a catalog product carrying the score and rank assigned by
// whichever strategy or table produced it. The gorm column tags let the
// repositories scan joined score+product rows straight into it.
type ScoredProduct struct {
	ProductID  uint64  `gorm:"column:product_id" json:"product_id"`
	ExternalID string  `gorm:"column:external_id" json:"external_id"`
	Name       string  `gorm:"column:name" json:"name"`
	Price      float64 `gorm:"column:price" json:"price"`
	ImageURL   string  `gorm:"column:image_url" json:"image_url"`
	CategoryID uint64  `gorm:"column:category_id" json:"category_id"`
	Score      float64 `gorm:"column:score" json:"score"`
	Rank       int     `gorm:"-" json:"rank"`
}

// RecommendationResult is what the orchestrator returns and what gets cached
// under rec:* keys.
type RecommendationResult struct {
	Items    []ScoredProduct `json:"items"`
	Strategy Strategy        `json:"strategy"`
}
