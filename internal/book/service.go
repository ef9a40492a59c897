package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageSize is the fixed pagination window for list and search results.
const PageSize = 20

// Service provides catalog business logic on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new book and returns the stored record.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	b.ID = primitive.NilObjectID
	return s.repo.Insert(ctx, b)
}

// Get returns the book matching id. An unparseable id maps to ErrNotFound,
// since no record can match it.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrNotFound
	}
	return s.repo.Get(ctx, oid)
}

// List returns one page of books ordered by title. Pages beyond the data
// yield an empty slice, not an error.
func (s *Service) List(ctx context.Context, page int) ([]Book, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.List(ctx, PageSize, (page-1)*PageSize)
}

// Search returns one page of books matching the query filters.
func (s *Service) Search(ctx context.Context, q Query) ([]Book, error) {
	if q.MinPrice > q.MaxPrice {
		return nil, ErrInvalidPriceRange
	}
	if q.Limit <= 0 {
		q.Limit = PageSize
	}
	return s.repo.Search(ctx, q)
}

// Update merges the supplied fields onto the existing record and returns it.
// An empty update is a no-op that still returns the current record; a
// missing record yields ErrNotFound. Existence is checked explicitly so a
// no-change update is never mistaken for a missing record.
func (s *Service) Update(ctx context.Context, id string, u Update) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrNotFound
	}

	current, err := s.repo.Get(ctx, oid)
	if err != nil {
		return Book{}, err
	}
	if u.IsEmpty() {
		return current, nil
	}

	if err := s.repo.Update(ctx, oid, u); err != nil {
		return Book{}, err
	}
	return s.repo.Get(ctx, oid)
}

// Delete removes the book permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, oid)
}

// AddStock increments the book's stock by qty and returns the updated record.
func (s *Service) AddStock(ctx context.Context, id string, qty int) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrNotFound
	}
	return s.repo.AddStock(ctx, oid, qty)
}

// RegisterSale atomically moves qty copies from stock to sold and returns
// the updated record. Fails with ErrInsufficientStock when fewer than qty
// copies are in stock.
func (s *Service) RegisterSale(ctx context.Context, id string, qty int) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrNotFound
	}
	return s.repo.RegisterSale(ctx, oid, qty)
}
