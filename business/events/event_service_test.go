package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopsmart/domain"
)

type fakeEventRepo struct {
	saved []*domain.Event
}

func (f *fakeEventRepo) Save(_ context.Context, event *domain.Event) error {
	f.saved = append(f.saved, event)
	return nil
}

type fakeProductRepo struct {
	products map[uint64]domain.Product
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

type fakeUserRepo struct {
	users   map[string]domain.User
	created []*domain.User
}

func (f *fakeUserRepo) FindByExternalID(_ context.Context, externalID string) (domain.User, error) {
	u, ok := f.users[externalID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uint64(len(f.created) + 100)
	f.created = append(f.created, user)
	if f.users == nil {
		f.users = make(map[string]domain.User)
	}
	f.users[user.ExternalID] = *user
	return nil
}

type fakeRecCache struct {
	deletedPrefixes []string
}

func (f *fakeRecCache) DeletePrefix(_ context.Context, prefix string) int {
	f.deletedPrefixes = append(f.deletedPrefixes, prefix)
	return 1
}

func TestTrackUnknownProduct(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	svc := NewService(eventRepo, &fakeProductRepo{}, &fakeUserRepo{}, nil)

	_, err := svc.Track(context.Background(), "u-1", 99, domain.EventTypeView, time.Time{}, "", nil)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(eventRepo.saved) != 0 {
		t.Errorf("event saved despite unknown product")
	}
}

func TestTrackCreatesAnonymousUserOnFirstSight(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	userRepo := &fakeUserRepo{}
	products := &fakeProductRepo{products: map[uint64]domain.Product{10: {ID: 10}}}
	svc := NewService(eventRepo, products, userRepo, nil)

	event, err := svc.Track(context.Background(), "fresh-visitor", 10, domain.EventTypeView, time.Time{}, "sess-1", nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(userRepo.created) != 1 {
		t.Fatalf("expected 1 user created, got %d", len(userRepo.created))
	}
	created := userRepo.created[0]
	if created.ExternalID != "fresh-visitor" || !created.IsAnonymous {
		t.Errorf("created user %+v, want anonymous fresh-visitor", created)
	}
	if event.UserID != created.ID {
		t.Errorf("event user id = %d, want %d", event.UserID, created.ID)
	}
	if event.Timestamp.IsZero() {
		t.Errorf("zero timestamp was not defaulted")
	}
}

func TestTrackReusesExistingUser(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	userRepo := &fakeUserRepo{users: map[string]domain.User{
		"regular": {ID: 7, ExternalID: "regular"},
	}}
	products := &fakeProductRepo{products: map[uint64]domain.Product{10: {ID: 10}}}
	svc := NewService(eventRepo, products, userRepo, nil)

	when := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	event, err := svc.Track(context.Background(), "regular", 10, domain.EventTypePurchase, when, "", nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(userRepo.created) != 0 {
		t.Errorf("existing user recreated")
	}
	if event.UserID != 7 {
		t.Errorf("event user id = %d, want 7", event.UserID)
	}
	if !event.Timestamp.Equal(when) {
		t.Errorf("caller timestamp %v overwritten with %v", when, event.Timestamp)
	}
}

func TestTrackInvalidatesUserRecommendations(t *testing.T) {
	cache := &fakeRecCache{}
	products := &fakeProductRepo{products: map[uint64]domain.Product{10: {ID: 10}}}
	svc := NewService(&fakeEventRepo{}, products, &fakeUserRepo{}, cache)

	if _, err := svc.Track(context.Background(), "u-1", 10, domain.EventTypeAddToCart, time.Time{}, "", nil); err != nil {
		t.Fatal(err)
	}

	if len(cache.deletedPrefixes) != 1 || cache.deletedPrefixes[0] != "rec:u-1:" {
		t.Fatalf("deleted prefixes = %v, want [rec:u-1:]", cache.deletedPrefixes)
	}
}
