package book

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores books in a MongoDB collection.
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

// containsPattern builds a case-insensitive substring match. The input is
// quoted so metacharacters in user filters match literally.
func containsPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func (r *MongoRepo) Insert(ctx context.Context, b Book) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(timeoutCtx, b)
	if err != nil {
		return Book{}, fmt.Errorf("insert book: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return Book{}, fmt.Errorf("insert book: unexpected inserted id type %T", res.InsertedID)
	}
	return r.Get(ctx, id)
}

func (r *MongoRepo) Get(ctx context.Context, id primitive.ObjectID) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	err := r.coll.FindOne(timeoutCtx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func (r *MongoRepo) List(ctx context.Context, limit, offset int) ([]Book, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(timeoutCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := []Book{}
	if err := cursor.All(timeoutCtx, &books); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// searchFilter translates a Query into a filter document. Absent filters
// are omitted entirely so they match all books.
func searchFilter(q Query) bson.M {
	filter := bson.M{}
	if q.Title != "" {
		filter["title"] = containsPattern(q.Title)
	}
	if q.Author != "" {
		filter["author"] = containsPattern(q.Author)
	}
	if q.FilterPrice {
		filter["price"] = bson.M{"$gte": q.MinPrice, "$lte": q.MaxPrice}
	}
	return filter
}

func (r *MongoRepo) Search(ctx context.Context, q Query) ([]Book, error) {
	filter := searchFilter(q)

	sortField := "title"
	switch q.SortBy {
	case "author", "price":
		sortField = q.SortBy
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: 1}}).
		SetSkip(int64(q.Offset)).
		SetLimit(int64(q.Limit))

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(timeoutCtx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	books := []Book{}
	if err := cursor.All(timeoutCtx, &books); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

func (r *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, u Update) error {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Author != nil {
		set["author"] = *u.Author
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Stock != nil {
		set["stock"] = *u.Stock
	}
	if len(set) == 0 {
		return nil
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	// Existence is the caller's concern; a matched document with equal
	// values reports modified_count 0 and is still a success here.
	if _, err := r.coll.UpdateOne(timeoutCtx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (r *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(timeoutCtx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) AddStock(ctx context.Context, id primitive.ObjectID, qty int) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b Book
	err := r.coll.FindOneAndUpdate(timeoutCtx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}},
		opts,
	).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, fmt.Errorf("add stock: %w", err)
	}
	return b, nil
}

// RegisterSale decrements stock and increments sold in one conditional
// update, so stock can never be observed negative even under concurrent
// sales. The follow-up read on a miss only picks the right error.
func (r *MongoRepo) RegisterSale(ctx context.Context, id primitive.ObjectID, qty int) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b Book
	err := r.coll.FindOneAndUpdate(timeoutCtx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty, "sold": qty}},
		opts,
	).Decode(&b)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return Book{}, fmt.Errorf("register sale: %w", err)
	}

	if _, err := r.Get(ctx, id); err != nil {
		return Book{}, err
	}
	return Book{}, ErrInsufficientStock
}
