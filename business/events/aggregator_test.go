package events

import (
	"testing"
	"time"

	"shopsmart/domain"
)

func TestAggregateSumsWeightsPerPair(t *testing.T) {
	now := time.Now().UTC()
	feed := []domain.ProductEvent{
		{UserID: 1, ProductID: 10, EventType: domain.EventTypeView, Timestamp: now},
		{UserID: 1, ProductID: 10, EventType: domain.EventTypeView, Timestamp: now},
		{UserID: 1, ProductID: 11, EventType: domain.EventTypePurchase, Timestamp: now},
		{UserID: 2, ProductID: 10, EventType: domain.EventTypeAddToCart, Timestamp: now},
	}

	got := Aggregate(feed)

	if len(got) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(got))
	}

	// two views stack to 2.0
	if got[0].UserID != 1 || got[0].ProductID != 10 || got[0].Weight != 2.0 {
		t.Errorf("pair (1,10): got %+v, want weight 2.0", got[0])
	}
	if got[1].ProductID != 11 || got[1].Weight != 5.0 {
		t.Errorf("pair (1,11): got %+v, want weight 5.0", got[1])
	}
	if got[2].UserID != 2 || got[2].Weight != 3.0 {
		t.Errorf("pair (2,10): got %+v, want weight 3.0", got[2])
	}
}

func TestAggregateKeepsFirstSeenOrder(t *testing.T) {
	feed := []domain.ProductEvent{
		{UserID: 3, ProductID: 30, EventType: domain.EventTypeView},
		{UserID: 1, ProductID: 10, EventType: domain.EventTypeView},
		{UserID: 3, ProductID: 30, EventType: domain.EventTypePurchase},
		{UserID: 2, ProductID: 20, EventType: domain.EventTypeView},
	}

	got := Aggregate(feed)

	wantOrder := []uint64{30, 10, 20}
	for i, pid := range wantOrder {
		if got[i].ProductID != pid {
			t.Errorf("position %d: got product %d, want %d", i, got[i].ProductID, pid)
		}
	}
}

func TestAggregateEmptyFeed(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Fatalf("expected no interactions, got %d", len(got))
	}
}
