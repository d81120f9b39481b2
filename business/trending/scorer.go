package trending

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"shopsmart/domain"
	"shopsmart/pkg/logger"
	"shopsmart/pkg/metrics"

	"github.com/google/uuid"
)

// decayLambda controls how fast older events lose weight; shorter windows
// decay faster.
var decayLambda = map[string]float64{
	domain.TimeWindow7d:  0.3,
	domain.TimeWindow30d: 0.1,
}

type EventRepository interface {
	FindSince(ctx context.Context, cutoff time.Time) ([]domain.ProductEvent, error)
}

type TrendingRepository interface {
	ReplaceWindow(ctx context.Context, window string, rows []domain.TrendingScore) error
}

type Cache interface {
	DeletePrefix(ctx context.Context, prefix string) int
}

// Scorer is the trending batch job. It runs as an independent, idempotent
// periodic pass; each window's table is fully replaced per run.
type Scorer struct {
	eventRepo    EventRepository
	trendingRepo TrendingRepository
	cache        Cache
}

func NewScorer(eventRepo EventRepository, trendingRepo TrendingRepository, cache Cache) *Scorer {
	return &Scorer{
		eventRepo:    eventRepo,
		trendingRepo: trendingRepo,
		cache:        cache,
	}
}

func (s *Scorer) Run(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()

	for _, window := range domain.TimeWindows {
		days, err := windowDays(window)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		events, err := s.eventRepo.FindSince(ctx, now.AddDate(0, 0, -days))
		if err != nil {
			return fmt.Errorf("failed to load events for %s window: %w", window, err)
		}

		rows := Compute(window, now, events)

		if err := s.trendingRepo.ReplaceWindow(ctx, window, rows); err != nil {
			return err
		}

		metrics.PipelineRowsWritten.WithLabelValues("trending", window).Set(float64(len(rows)))
		logger.Info("trending window scored",
			"run_id", runID, "window", window, "events", len(events), "rows", len(rows))
	}

	// every cached artifact may now derive from superseded scores
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, "trending:")
		s.cache.DeletePrefix(ctx, "rec:")
	}

	metrics.PipelineDuration.WithLabelValues("trending").Observe(time.Since(start).Seconds())
	logger.Info("trending pipeline complete", "run_id", runID, "duration", time.Since(start).String())

	return nil
}

// Compute scores one window: every event contributes
// weight * exp(-lambda * daysSince), summed per (product, category), then
// normalized so the window maximum is exactly 100. No qualifying events means
// no rows, never a zero-filled table and never NaN from a zero denominator.
// Rows come back ordered by score descending with ascending product id
// breaking ties.
func Compute(window string, now time.Time, events []domain.ProductEvent) []domain.TrendingScore {
	lambda := decayLambda[window]

	type scoreKey struct {
		productID  uint64
		categoryID uint64
	}
	type accumulator struct {
		score float64
		count int64
	}

	sums := make(map[scoreKey]*accumulator)
	for _, ev := range events {
		daysAgo := now.Sub(ev.Timestamp).Hours() / 24

		k := scoreKey{productID: ev.ProductID, categoryID: ev.CategoryID}
		acc := sums[k]
		if acc == nil {
			acc = &accumulator{}
			sums[k] = acc
		}
		acc.score += domain.EventWeight(ev.EventType) * math.Exp(-lambda*daysAgo)
		acc.count++
	}

	var maxScore float64
	for _, acc := range sums {
		if acc.score > maxScore {
			maxScore = acc.score
		}
	}
	if maxScore <= 0 {
		return nil
	}

	rows := make([]domain.TrendingScore, 0, len(sums))
	for k, acc := range sums {
		rows = append(rows, domain.TrendingScore{
			ProductID:   k.productID,
			CategoryID:  k.categoryID,
			TimeWindow:  window,
			Score:       acc.score / maxScore * 100,
			EventCount:  acc.count,
			LastUpdated: now,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	return rows
}

func windowDays(window string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSuffix(window, "d"))
	if err != nil {
		return 0, fmt.Errorf("invalid time window %q: %w", window, err)
	}

	return days, nil
}
