package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopsmart/domain"
	"shopsmart/pkg/logger"

	"gorm.io/datatypes"
)

// EventRepository contract interface
type EventRepository interface {
	Save(ctx context.Context, event *domain.Event) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type UserRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// RecommendationCache is the slice of the cache capability ingestion needs:
// point invalidation of one user's recommendation entries.
type RecommendationCache interface {
	DeletePrefix(ctx context.Context, prefix string) int
}

type Service struct {
	eventRepo   EventRepository
	productRepo ProductRepository
	userRepo    UserRepository
	cache       RecommendationCache
}

func NewService(
	eventRepo EventRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	cache RecommendationCache,
) *Service {
	return &Service{
		eventRepo:   eventRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

// Track records one interaction. The product must exist
// (domain.ErrProductNotFound otherwise); the user is created on first sight.
// The user's cached recommendations are invalidated synchronously so the next
// request reflects this interaction instead of waiting out the TTL.
func (s *Service) Track(
	ctx context.Context,
	externalUserID string,
	productID uint64,
	eventType string,
	timestamp time.Time,
	sessionID string,
	metadata map[string]any,
) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	user, err := s.getOrCreateUser(ctx, externalUserID)
	if err != nil {
		return nil, err
	}

	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	event := &domain.Event{
		UserID:    user.ID,
		ProductID: productID,
		EventType: eventType,
		Timestamp: timestamp,
		SessionID: sessionID,
		Metadata:  datatypes.JSONMap(metadata),
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		logger.Error("failed to save event", "error", err)
		return nil, err
	}

	if s.cache != nil {
		removed := s.cache.DeletePrefix(ctx, fmt.Sprintf("rec:%s:", externalUserID))
		if removed > 0 {
			logger.Info("invalidated user recommendation cache", "user_id", externalUserID, "keys", removed)
		}
	}

	return event, nil
}

func (s *Service) getOrCreateUser(ctx context.Context, externalID string) (domain.User, error) {
	user, err := s.userRepo.FindByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	user = domain.User{
		ExternalID:  externalID,
		IsAnonymous: true,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}
