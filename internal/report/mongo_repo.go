package report

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepo runs the report pipelines against the books collection.
type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// TotalStock sums the stock field over the whole collection. The single
// $group stage yields no document at all when the collection is empty, so
// an empty result decodes to zero.
func (r *MongoRepo) TotalStock(ctx context.Context) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: ""},
			{Key: "book_count", Value: bson.D{{Key: "$sum", Value: "$stock"}}},
		}}},
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Aggregate(timeoutCtx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("total stock: %w", err)
	}

	var groups []TotalBooks
	if err := cursor.All(timeoutCtx, &groups); err != nil {
		return 0, fmt.Errorf("total stock: %w", err)
	}
	if len(groups) == 0 {
		return 0, nil
	}
	return groups[0].BookCount, nil
}

// TopSelling ranks books by copies sold, excluding those that never sold.
func (r *MongoRepo) TopSelling(ctx context.Context, limit int) ([]TopSeller, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "sold", Value: bson.D{{Key: "$gt", Value: 0}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "sold", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "Title", Value: "$title"},
			{Key: "Author", Value: "$author"},
			{Key: "CopiesSold", Value: "$sold"},
		}}},
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Aggregate(timeoutCtx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top selling: %w", err)
	}

	rows := []TopSeller{}
	if err := cursor.All(timeoutCtx, &rows); err != nil {
		return nil, fmt.Errorf("top selling: %w", err)
	}
	return rows, nil
}

// TopStockAuthors groups the catalog by author and ranks authors by their
// summed stock. Authors whose titles are all out of stock are excluded.
func (r *MongoRepo) TopStockAuthors(ctx context.Context, limit int) ([]AuthorStock, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author"},
			{Key: "author_copies", Value: bson.D{{Key: "$sum", Value: "$stock"}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "author_copies", Value: bson.D{{Key: "$gt", Value: 0}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "author_copies", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "Author", Value: "$_id"},
			{Key: "Books", Value: "$author_copies"},
		}}},
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Aggregate(timeoutCtx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top stock authors: %w", err)
	}

	rows := []AuthorStock{}
	if err := cursor.All(timeoutCtx, &rows); err != nil {
		return nil, fmt.Errorf("top stock authors: %w", err)
	}
	return rows, nil
}
