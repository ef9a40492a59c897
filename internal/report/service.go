package report

import (
	"context"
)

// TopN is the fixed row cap for the ranked reports.
const TopN = 5

// Service provides the catalog reporting views.
type Service struct {
	repo Repository
}

// NewService creates a new report service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// TotalBooks returns the total copies in stock. An empty catalog yields a
// zero count, not an error.
func (s *Service) TotalBooks(ctx context.Context) (TotalBooks, error) {
	total, err := s.repo.TotalStock(ctx)
	if err != nil {
		return TotalBooks{}, err
	}
	return TotalBooks{BookCount: total}, nil
}

// TopSelling returns up to TopN books with at least one copy sold, best
// sellers first.
func (s *Service) TopSelling(ctx context.Context) ([]TopSeller, error) {
	return s.repo.TopSelling(ctx, TopN)
}

// TopStockAuthors returns up to TopN authors ranked by total copies in
// stock across all their titles.
func (s *Service) TopStockAuthors(ctx context.Context) ([]AuthorStock, error) {
	return s.repo.TopStockAuthors(ctx, TopN)
}
