package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the contract for book data storage.
type Repository interface {
	Insert(ctx context.Context, b Book) (Book, error)
	Get(ctx context.Context, id primitive.ObjectID) (Book, error)
	List(ctx context.Context, limit, offset int) ([]Book, error)
	Search(ctx context.Context, q Query) ([]Book, error)
	Update(ctx context.Context, id primitive.ObjectID, u Update) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddStock(ctx context.Context, id primitive.ObjectID, qty int) (Book, error)
	RegisterSale(ctx context.Context, id primitive.ObjectID, qty int) (Book, error)
}
