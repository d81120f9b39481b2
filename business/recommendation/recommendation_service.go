package recommendation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"shopsmart/domain"
)

const (
	// recentInteractionLimit caps how much history feeds the personalized
	// strategy.
	recentInteractionLimit = 50

	// similarPerInteraction is how many neighbors each recent interaction
	// contributes candidates from.
	similarPerInteraction = 20

	// trendingWindow is the window both fallback strategies read.
	trendingWindow = domain.TimeWindow7d

	defaultK = 10
)

type SimilarityService interface {
	SimilarProducts(ctx context.Context, productID uint64, k int) ([]domain.ScoredProduct, error)
}

type TrendingService interface {
	GlobalTrending(ctx context.Context, k int, window string) ([]domain.ScoredProduct, error)
	TrendingByCategory(ctx context.Context, categoryID uint64, k int, window string) ([]domain.ScoredProduct, error)
}

type UserRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (domain.User, error)
}

type EventRepository interface {
	FindRecentByUser(ctx context.Context, userID uint64, limit int) ([]domain.Event, error)
}

// Service is the online orchestrator: it cascades through the personalized,
// category-cold-start and global-trending strategies and fronts them with a
// read-through cache.
type Service struct {
	similarity SimilarityService
	trending   TrendingService
	userRepo   UserRepository
	eventRepo  EventRepository
	cache      Cache
	recTTL     time.Duration
	simTTL     time.Duration
}

func NewService(
	similarity SimilarityService,
	trending TrendingService,
	userRepo UserRepository,
	eventRepo EventRepository,
	cache Cache,
	recommendationTTL time.Duration,
	similarityTTL time.Duration,
) *Service {
	if recommendationTTL <= 0 {
		recommendationTTL = 5 * time.Minute
	}
	if similarityTTL <= 0 {
		similarityTTL = time.Hour
	}

	return &Service{
		similarity: similarity,
		trending:   trending,
		userRepo:   userRepo,
		eventRepo:  eventRepo,
		cache:      cache,
		recTTL:     recommendationTTL,
		simTTL:     similarityTTL,
	}
}

// Recommend answers a recommendation request through the strategy cascade.
// The result always carries the tag of the strategy that produced it.
func (s *Service) Recommend(ctx context.Context, externalUserID string, k int, categoryID uint64) (domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}
	if k <= 0 {
		k = defaultK
	}

	key := recommendationKey(externalUserID, k, categoryID)

	return readThrough(ctx, s.cache, key, s.recTTL, func() (domain.RecommendationResult, error) {
		return s.recommend(ctx, externalUserID, k, categoryID)
	})
}

// recommend is the cascade itself: strictly ordered strategies, each deciding
// applicability for itself and falling through when inapplicable or
// under-productive.
func (s *Service) recommend(ctx context.Context, externalUserID string, k int, categoryID uint64) (domain.RecommendationResult, error) {
	items, ok, err := s.personalized(ctx, externalUserID, k, categoryID)
	if err != nil {
		return domain.RecommendationResult{}, err
	}
	if ok {
		return domain.RecommendationResult{Items: items, Strategy: domain.StrategyPersonalized}, nil
	}

	if categoryID != 0 {
		items, err := s.trending.TrendingByCategory(ctx, categoryID, k, trendingWindow)
		if err != nil {
			return domain.RecommendationResult{}, err
		}
		return domain.RecommendationResult{Items: items, Strategy: domain.StrategyColdStartCategory}, nil
	}

	items, err = s.trending.GlobalTrending(ctx, k, trendingWindow)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	return domain.RecommendationResult{Items: items, Strategy: domain.StrategyTrending}, nil
}

// personalized runs item-to-item collaborative filtering over the user's
// recent history. It reports ok=false when the strategy is inapplicable (no
// user, no history) or under-productive (fewer than ceil(k/2) candidates).
// A thin personalized list is discarded, not padded with trending items.
func (s *Service) personalized(ctx context.Context, externalUserID string, k int, categoryID uint64) ([]domain.ScoredProduct, bool, error) {
	user, err := s.userRepo.FindByExternalID(ctx, externalUserID)
	if err != nil {
		// unknown users are expected input, they simply cold-start
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	recent, err := s.eventRepo.FindRecentByUser(ctx, user.ID, recentInteractionLimit)
	if err != nil {
		return nil, false, err
	}
	if len(recent) == 0 {
		return nil, false, nil
	}

	interacted := make(map[uint64]struct{}, len(recent))
	for _, ev := range recent {
		interacted[ev.ProductID] = struct{}{}
	}

	// typed accumulator per candidate; discovery order is kept so equal
	// scores rank first-discovered-first
	type candidateScore struct {
		product domain.ScoredProduct
		score   float64
	}

	scores := make(map[uint64]*candidateScore)
	order := make([]uint64, 0)

	for _, ev := range recent {
		weight := domain.EventWeight(ev.EventType)

		similar, err := s.similarity.SimilarProducts(ctx, ev.ProductID, similarPerInteraction)
		if err != nil {
			// product delisted since the interaction; its neighbors are gone too
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, false, err
		}

		for _, cand := range similar {
			if _, seen := interacted[cand.ProductID]; seen {
				continue
			}
			if categoryID != 0 && cand.CategoryID != categoryID {
				continue
			}

			cs := scores[cand.ProductID]
			if cs == nil {
				cs = &candidateScore{product: cand}
				scores[cand.ProductID] = cs
				order = append(order, cand.ProductID)
			}
			cs.score += cand.Score * weight
		}
	}

	ranked := make([]*candidateScore, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, scores[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	if len(ranked) < (k+1)/2 {
		return nil, false, nil
	}

	items := make([]domain.ScoredProduct, 0, len(ranked))
	for i, cs := range ranked {
		p := cs.product
		p.Score = cs.score
		p.Rank = i + 1
		items = append(items, p)
	}

	return items, true, nil
}

// Similar lists products similar to the given source product, read-through
// cached. A missing source product fails with domain.ErrProductNotFound and
// caches nothing.
func (s *Service) Similar(ctx context.Context, productID uint64, k int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if k <= 0 {
		k = defaultK
	}

	return readThrough(ctx, s.cache, similarityKey(productID, k), s.simTTL, func() ([]domain.ScoredProduct, error) {
		return s.similarity.SimilarProducts(ctx, productID, k)
	})
}
