package report

import (
	"context"
)

// Repository defines the aggregation queries behind the catalog reports.
type Repository interface {
	TotalStock(ctx context.Context) (int, error)
	TopSelling(ctx context.Context, limit int) ([]TopSeller, error)
	TopStockAuthors(ctx context.Context, limit int) ([]AuthorStock, error)
}
