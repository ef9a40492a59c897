package report

import (
	"net/http"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// TotalBooks handles GET /reports/total_books
// @Summary Total number of book copies in stock
// @Tags reports
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /reports/total_books [get]
func (h *HTTPHandler) TotalBooks(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalBooks(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, total, nil)
}

// TopSelling handles GET /reports/top_5_selling
// @Summary The five best-selling books
// @Tags reports
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /reports/top_5_selling [get]
func (h *HTTPHandler) TopSelling(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TopSelling(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, rows, nil)
}

// TopStockAuthors handles GET /reports/top_5_stock_authors
// @Summary The five authors with the most copies in stock
// @Tags reports
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /reports/top_5_stock_authors [get]
func (h *HTTPHandler) TopStockAuthors(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TopStockAuthors(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, rows, nil)
}
