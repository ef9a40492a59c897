package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// CreateRequest is the payload for POST /books. Price and stock are
// pointers so that a valid zero is distinguishable from an absent field.
type CreateRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Author      string   `json:"author" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=300"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Sold        *int     `json:"sold" validate:"omitempty,gte=0"`
}

const (
	defaultMinPrice = 0
	defaultMaxPrice = 1000
)

func parsePage(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrInsufficientStock):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", "Insufficient stock to make this purchase", nil)
	case errors.Is(err, ErrInvalidPriceRange):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "INVALID_RANGE", "min_price cannot be greater than max_price", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// Create handles POST /books
// @Summary Add a new book
// @Tags books
// @Accept json
// @Produce json
// @Param book body CreateRequest true "Book to add"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}

	if details := ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid book payload", details)
		return
	}

	b := Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
	}
	if req.Sold != nil {
		b.Sold = *req.Sold
	}

	created, err := h.service.Create(r.Context(), b)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, created)
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} httpx.SuccessResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)

	books, err := h.service.List(r.Context(), page)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{
		"page":      page,
		"page_size": PageSize,
	})
}

// Get handles GET /books/{id}
// @Summary Fetch a book by ID
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Update handles PUT /books/{id}
// @Summary Update an existing book
// @Description Merges the supplied fields onto the stored record; absent fields are left unchanged
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param book body Update true "Fields to change"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var u Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}

	if details := ValidateStruct(u); details != nil {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid book payload", details)
		return
	}

	updated, err := h.service.Update(r.Context(), r.PathValue("id"), u)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, updated, nil)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Param id path string true "Book ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) searchWith(w http.ResponseWriter, r *http.Request, q Query) {
	page := parsePage(r)
	q.Limit = PageSize
	q.Offset = (page - 1) * PageSize

	books, err := h.service.Search(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{
		"page":      page,
		"page_size": PageSize,
	})
}

func priceRange(r *http.Request) (float64, float64) {
	minPrice := float64(defaultMinPrice)
	maxPrice := float64(defaultMaxPrice)
	if s := r.URL.Query().Get("min_price"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			minPrice = v
		}
	}
	if s := r.URL.Query().Get("max_price"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			maxPrice = v
		}
	}
	return minPrice, maxPrice
}

// Search handles GET /search
// @Summary Search books by title, author and price range
// @Description All filters combine with AND semantics; absent filters match everything
// @Tags search
// @Produce json
// @Param title query string false "Title substring, case-insensitive"
// @Param author query string false "Author substring, case-insensitive"
// @Param min_price query number false "Lower price bound, inclusive" default(0)
// @Param max_price query number false "Upper price bound, inclusive" default(1000)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	minPrice, maxPrice := priceRange(r)

	h.searchWith(w, r, Query{
		Title:       query.Get("title"),
		Author:      query.Get("author"),
		FilterPrice: true,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		SortBy:      "title",
	})
}

// SearchByTitle handles GET /search/title/{title}
// @Summary Search books by title
// @Tags search
// @Produce json
// @Param title path string true "Title substring, case-insensitive"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} httpx.SuccessResponse
// @Router /search/title/{title} [get]
func (h *HTTPHandler) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	h.searchWith(w, r, Query{
		Title:  r.PathValue("title"),
		SortBy: "title",
	})
}

// SearchByAuthor handles GET /search/author/{author}
// @Summary Search books by author
// @Tags search
// @Produce json
// @Param author path string true "Author substring, case-insensitive"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} httpx.SuccessResponse
// @Router /search/author/{author} [get]
func (h *HTTPHandler) SearchByAuthor(w http.ResponseWriter, r *http.Request) {
	h.searchWith(w, r, Query{
		Author: r.PathValue("author"),
		SortBy: "author",
	})
}

// SearchByPrice handles GET /search/price
// @Summary Search books by price range
// @Tags search
// @Produce json
// @Param min_price query number false "Lower price bound, inclusive" default(0)
// @Param max_price query number false "Upper price bound, inclusive" default(1000)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /search/price [get]
func (h *HTTPHandler) SearchByPrice(w http.ResponseWriter, r *http.Request) {
	minPrice, maxPrice := priceRange(r)

	h.searchWith(w, r, Query{
		FilterPrice: true,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		SortBy:      "price",
	})
}

func parseQty(r *http.Request) (int, bool) {
	qty, err := strconv.Atoi(r.URL.Query().Get("qty"))
	if err != nil || qty <= 0 {
		return 0, false
	}
	return qty, true
}

// AddStock handles PUT /{id}/addStock
// @Summary Add stock for an existing book
// @Tags stock
// @Produce json
// @Param id path string true "Book ID"
// @Param qty query int true "Copies to add, must be positive"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /{id}/addStock [put]
func (h *HTTPHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	qty, ok := parseQty(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "qty must be a positive integer", nil)
		return
	}

	b, err := h.service.AddStock(r.Context(), r.PathValue("id"), qty)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// AddSale handles PUT /{id}/addSale
// @Summary Register a sale of an existing book
// @Description Moves qty copies from stock to sold in one atomic update
// @Tags stock
// @Produce json
// @Param id path string true "Book ID"
// @Param qty query int true "Copies sold, must be positive"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /{id}/addSale [put]
func (h *HTTPHandler) AddSale(w http.ResponseWriter, r *http.Request) {
	qty, ok := parseQty(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "qty must be a positive integer", nil)
		return
	}

	b, err := h.service.RegisterSale(r.Context(), r.PathValue("id"), qty)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}
