package book

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrInsufficientStock is returned when a sale exceeds the available stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidPriceRange is returned when min_price is greater than max_price.
var ErrInvalidPriceRange = errors.New("min_price cannot be greater than max_price")

// Book represents one catalog entry.
type Book struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Author      string             `json:"author" bson:"author"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int                `json:"stock" bson:"stock"`
	Sold        int                `json:"sold" bson:"sold"`
}

// Update holds a partial set of book fields. Nil fields are left unchanged.
// The identifier and the sold counter are never updatable through Update.
type Update struct {
	Title       *string  `json:"title" validate:"omitempty,max=100"`
	Author      *string  `json:"author" validate:"omitempty,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=300"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether no field is set.
func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Author == nil && u.Description == nil && u.Price == nil && u.Stock == nil
}

// Query defines filters and pagination for searching books. The price
// range only applies when FilterPrice is set; the title-only and
// author-only searches match books at any price.
type Query struct {
	Title       string
	Author      string
	FilterPrice bool
	MinPrice    float64
	MaxPrice    float64
	SortBy      string
	Limit       int
	Offset      int
}
