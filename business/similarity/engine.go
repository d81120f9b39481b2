package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"shopsmart/business/events"
	"shopsmart/domain"
	"shopsmart/pkg/logger"
	"shopsmart/pkg/metrics"

	"github.com/google/uuid"
)

type EventRepository interface {
	FindSince(ctx context.Context, cutoff time.Time) ([]domain.ProductEvent, error)
}

type SimilarityRepository interface {
	ReplaceAll(ctx context.Context, rows []domain.ItemSimilarity) error
}

type Cache interface {
	DeletePrefix(ctx context.Context, prefix string) int
}

type EngineConfig struct {
	LookbackDays    int
	MinCoOccurrence int
	TopK            int
	BlockSize       int
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.LookbackDays <= 0 {
		c.LookbackDays = 90
	}
	if c.MinCoOccurrence <= 0 {
		c.MinCoOccurrence = 2
	}
	if c.TopK <= 0 {
		c.TopK = 50
	}
	if c.BlockSize <= 0 {
		c.BlockSize = 500
	}

	return c
}

// Engine is the item-to-item similarity batch job: interaction-weighted
// cosine similarity with a binary co-occurrence qualifying filter and top-K
// pruning per source product.
type Engine struct {
	eventRepo EventRepository
	simRepo   SimilarityRepository
	cache     Cache
	cfg       EngineConfig
}

func NewEngine(eventRepo EventRepository, simRepo SimilarityRepository, cache Cache, cfg EngineConfig) *Engine {
	return &Engine{
		eventRepo: eventRepo,
		simRepo:   simRepo,
		cache:     cache,
		cfg:       cfg.withDefaults(),
	}
}

func (e *Engine) Run(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()

	cutoff := time.Now().UTC().AddDate(0, 0, -e.cfg.LookbackDays)
	rawEvents, err := e.eventRepo.FindSince(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to load interaction feed: %w", err)
	}

	interactions := events.Aggregate(rawEvents)
	logger.Info("interactions loaded", "run_id", runID, "events", len(rawEvents), "pairs", len(interactions))

	rows := e.Compute(interactions)

	if err := e.simRepo.ReplaceAll(ctx, rows); err != nil {
		return err
	}

	if e.cache != nil {
		e.cache.DeletePrefix(ctx, "sim:")
		e.cache.DeletePrefix(ctx, "rec:")
	}

	metrics.PipelineRowsWritten.WithLabelValues("similarity", domain.ScopeItemSimilarity).Set(float64(len(rows)))
	metrics.PipelineDuration.WithLabelValues("similarity").Observe(time.Since(start).Seconds())
	logger.Info("similarity pipeline complete",
		"run_id", runID, "rows", len(rows), "duration", time.Since(start).String())

	return nil
}

type candidate struct {
	productID uint64
	score     float64
	coCount   int
}

// Compute builds the sparse user x product weight matrix and emits, per
// product, its qualifying neighbors: pairs touched by at least
// MinCoOccurrence distinct users, scored by cosine similarity of the two
// weight columns, pruned to the TopK highest. Co-occurrence is a binary
// filter only, never part of the score. Self-pairs are excluded.
//
// Sources are walked in fixed-size blocks to bound peak working memory; the
// blocking is pure iteration order and cannot change the O(N^2) pairwise
// result.
func (e *Engine) Compute(interactions []domain.Interaction) []domain.ItemSimilarity {
	userIndex := make(map[uint64]int)
	columns := make(map[uint64]map[int]float64)

	for _, it := range interactions {
		ui, ok := userIndex[it.UserID]
		if !ok {
			ui = len(userIndex)
			userIndex[it.UserID] = ui
		}
		col := columns[it.ProductID]
		if col == nil {
			col = make(map[int]float64)
			columns[it.ProductID] = col
		}
		col[ui] += it.Weight
	}

	if len(columns) < 2 {
		return nil
	}

	productIDs := make([]uint64, 0, len(columns))
	for pid := range columns {
		productIDs = append(productIDs, pid)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	norms := make(map[uint64]float64, len(columns))
	for pid, col := range columns {
		var sumSq float64
		for _, w := range col {
			sumSq += w * w
		}
		norms[pid] = math.Sqrt(sumSq)
	}

	now := time.Now().UTC()
	var rows []domain.ItemSimilarity

	for blockStart := 0; blockStart < len(productIDs); blockStart += e.cfg.BlockSize {
		blockEnd := blockStart + e.cfg.BlockSize
		if blockEnd > len(productIDs) {
			blockEnd = len(productIDs)
		}

		for _, pid := range productIDs[blockStart:blockEnd] {
			col := columns[pid]

			candidates := make([]candidate, 0)
			for _, other := range productIDs {
				if other == pid {
					continue
				}

				dot, coCount := pairOverlap(col, columns[other])
				if coCount < e.cfg.MinCoOccurrence {
					continue
				}

				denom := norms[pid] * norms[other]
				if denom == 0 {
					continue
				}

				candidates = append(candidates, candidate{
					productID: other,
					score:     dot / denom,
					coCount:   coCount,
				})
			}

			sort.SliceStable(candidates, func(i, j int) bool {
				return candidates[i].score > candidates[j].score
			})
			if len(candidates) > e.cfg.TopK {
				candidates = candidates[:e.cfg.TopK]
			}

			for _, c := range candidates {
				rows = append(rows, domain.ItemSimilarity{
					ProductID:         pid,
					SimilarProductID:  c.productID,
					SimilarityScore:   c.score,
					CoOccurrenceCount: c.coCount,
					LastUpdated:       now,
				})
			}
		}
	}

	return rows
}

// pairOverlap walks the smaller of the two columns and returns the dot
// product plus the number of distinct users present in both.
func pairOverlap(a, b map[int]float64) (float64, int) {
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	var count int
	for ui, w := range a {
		if ow, ok := b[ui]; ok {
			dot += w * ow
			count++
		}
	}

	return dot, count
}
