package similarity

import (
	"context"
	"errors"
	"testing"

	"shopsmart/domain"
)

type fakeSimReader struct {
	rows      []domain.ScoredProduct
	lastLimit int
}

func (f *fakeSimReader) FindByProduct(_ context.Context, _ uint64, limit int) ([]domain.ScoredProduct, error) {
	f.lastLimit = limit
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
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

func TestSimilarProductsUnknownSource(t *testing.T) {
	svc := NewService(&fakeSimReader{}, &fakeProductRepo{products: map[uint64]domain.Product{}})

	_, err := svc.SimilarProducts(context.Background(), 99, 10)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSimilarProductsBoostReordersButKeepsScores(t *testing.T) {
	reader := &fakeSimReader{rows: []domain.ScoredProduct{
		{ProductID: 2, CategoryID: 7, Score: 0.5},
		{ProductID: 3, CategoryID: 1, Score: 0.45},
	}}
	repo := &fakeProductRepo{products: map[uint64]domain.Product{
		1: {ID: 1, CategoryID: 1},
	}}
	svc := NewService(reader, repo)

	got, err := svc.SimilarProducts(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	// same-category p3 boosted to 0.54 ranks ahead of p2 at 0.5
	if got[0].ProductID != 3 {
		t.Errorf("first item = %d, want boosted 3", got[0].ProductID)
	}
	// the stored similarity still comes back untouched
	if got[0].Score != 0.45 || got[1].Score != 0.5 {
		t.Errorf("scores mutated: got %f and %f", got[0].Score, got[1].Score)
	}
	if got[0].Rank != 1 || got[1].Rank != 2 {
		t.Errorf("ranks = %d,%d, want 1,2", got[0].Rank, got[1].Rank)
	}
}

func TestSimilarProductsTruncatesToK(t *testing.T) {
	reader := &fakeSimReader{rows: []domain.ScoredProduct{
		{ProductID: 2, CategoryID: 1, Score: 0.9},
		{ProductID: 3, CategoryID: 1, Score: 0.4},
	}}
	repo := &fakeProductRepo{products: map[uint64]domain.Product{
		1: {ID: 1, CategoryID: 1},
	}}
	svc := NewService(reader, repo)

	got, err := svc.SimilarProducts(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 1 || got[0].ProductID != 2 || got[0].Score != 0.9 {
		t.Fatalf("got %+v, want single item product 2 score 0.9", got)
	}
	// headroom lets boosted items climb into the final k
	if reader.lastLimit != 3 {
		t.Errorf("candidate fetch limit = %d, want k*3 = 3", reader.lastLimit)
	}
}

func TestSimilarProductsNoNeighbors(t *testing.T) {
	repo := &fakeProductRepo{products: map[uint64]domain.Product{
		1: {ID: 1, CategoryID: 1},
	}}
	svc := NewService(&fakeSimReader{}, repo)

	got, err := svc.SimilarProducts(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d items", len(got))
	}
}
