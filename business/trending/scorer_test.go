package trending

import (
	"math"
	"testing"
	"time"

	"shopsmart/domain"
)

func TestComputeNormalizesMaxToHundred(t *testing.T) {
	now := time.Now().UTC()
	events := []domain.ProductEvent{
		{UserID: 1, ProductID: 1, CategoryID: 1, EventType: domain.EventTypePurchase, Timestamp: now},
		{UserID: 2, ProductID: 2, CategoryID: 1, EventType: domain.EventTypeView, Timestamp: now},
	}

	rows := Compute(domain.TimeWindow7d, now, events)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if math.Abs(rows[0].Score-100) > 1e-9 {
		t.Errorf("top score = %f, want 100", rows[0].Score)
	}
	if rows[0].ProductID != 1 {
		t.Errorf("top product = %d, want 1 (purchase outweighs view)", rows[0].ProductID)
	}
	// view/purchase at the same instant: 1.0/5.0 of the max
	if math.Abs(rows[1].Score-20) > 1e-9 {
		t.Errorf("second score = %f, want 20", rows[1].Score)
	}
}

func TestComputeDecayPrefersRecentEvents(t *testing.T) {
	now := time.Now().UTC()
	events := []domain.ProductEvent{
		// one purchase six days ago vs one purchase today
		{UserID: 1, ProductID: 1, CategoryID: 1, EventType: domain.EventTypePurchase, Timestamp: now.AddDate(0, 0, -6)},
		{UserID: 2, ProductID: 2, CategoryID: 1, EventType: domain.EventTypePurchase, Timestamp: now},
	}

	rows := Compute(domain.TimeWindow7d, now, events)

	if rows[0].ProductID != 2 {
		t.Fatalf("top product = %d, want the fresher 2", rows[0].ProductID)
	}

	// lambda 0.3 over 6 days
	wantRatio := math.Exp(-0.3 * 6)
	gotRatio := rows[1].Score / rows[0].Score
	if math.Abs(gotRatio-wantRatio) > 1e-9 {
		t.Errorf("decay ratio = %f, want %f", gotRatio, wantRatio)
	}
}

func TestComputeEmptyWindowProducesNoRows(t *testing.T) {
	if rows := Compute(domain.TimeWindow7d, time.Now().UTC(), nil); rows != nil {
		t.Fatalf("expected nil rows for empty window, got %d", len(rows))
	}
}

func TestComputeTieBreaksByProductID(t *testing.T) {
	now := time.Now().UTC()
	events := []domain.ProductEvent{
		{UserID: 1, ProductID: 9, CategoryID: 1, EventType: domain.EventTypeView, Timestamp: now},
		{UserID: 2, ProductID: 3, CategoryID: 1, EventType: domain.EventTypeView, Timestamp: now},
		{UserID: 3, ProductID: 7, CategoryID: 2, EventType: domain.EventTypeView, Timestamp: now},
	}

	rows := Compute(domain.TimeWindow30d, now, events)

	wantOrder := []uint64{3, 7, 9}
	for i, pid := range wantOrder {
		if rows[i].ProductID != pid {
			t.Errorf("position %d: got product %d, want %d", i, rows[i].ProductID, pid)
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	now := time.Now().UTC()
	events := []domain.ProductEvent{
		{UserID: 1, ProductID: 1, CategoryID: 1, EventType: domain.EventTypeView, Timestamp: now.Add(-time.Hour)},
		{UserID: 2, ProductID: 2, CategoryID: 1, EventType: domain.EventTypeAddToCart, Timestamp: now.Add(-2 * time.Hour)},
		{UserID: 3, ProductID: 3, CategoryID: 2, EventType: domain.EventTypePurchase, Timestamp: now.Add(-3 * time.Hour)},
		{UserID: 1, ProductID: 2, CategoryID: 1, EventType: domain.EventTypeView, Timestamp: now.Add(-30 * time.Minute)},
	}

	first := Compute(domain.TimeWindow7d, now, events)
	for run := 0; run < 5; run++ {
		again := Compute(domain.TimeWindow7d, now, events)
		if len(again) != len(first) {
			t.Fatalf("run %d: row count changed from %d to %d", run, len(first), len(again))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("run %d row %d: %+v != %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestComputeCountsEventsPerProduct(t *testing.T) {
	now := time.Now().UTC()
	events := []domain.ProductEvent{
		{UserID: 1, ProductID: 1, CategoryID: 1, EventType: domain.EventTypeView, Timestamp: now},
		{UserID: 2, ProductID: 1, CategoryID: 1, EventType: domain.EventTypeView, Timestamp: now},
		{UserID: 3, ProductID: 1, CategoryID: 1, EventType: domain.EventTypePurchase, Timestamp: now},
	}

	rows := Compute(domain.TimeWindow7d, now, events)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].EventCount != 3 {
		t.Errorf("event count = %d, want 3", rows[0].EventCount)
	}
}
