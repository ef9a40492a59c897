package book

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookcatalog/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestHandler(t *testing.T) (*HTTPHandler, *MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	return NewHTTPHandler(NewService(mockRepo)), mockRepo
}

func TestHTTPHandler_Create(t *testing.T) {
	validBody := map[string]any{
		"title":       "Introduction to Web Backend",
		"author":      "Jane Doe",
		"description": "A simple introduction to Web Backend Development",
		"price":       50.0,
		"stock":       3,
	}

	tests := []struct {
		name           string
		body           any
		setupMock      func(m *MockRepository)
		expectedStatus int
	}{
		{
			name: "created",
			body: validBody,
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b Book) (Book, error) {
						assert.Equal(t, "Jane Doe", b.Author)
						assert.Equal(t, 0, b.Sold)
						b.ID = primitive.NewObjectID()
						return b, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "zero price and stock are valid",
			body: map[string]any{
				"title":       "Free Book",
				"author":      "Jane Doe",
				"description": "Giveaway",
				"price":       0,
				"stock":       0,
			},
			setupMock: func(m *MockRepository) {
				m.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(Book{Title: "Free Book"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing required fields",
			body:           map[string]any{"title": "Only a title"},
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "title over 100 characters",
			body: map[string]any{
				"title":       strings.Repeat("x", 101),
				"author":      "Jane Doe",
				"description": "desc",
				"price":       10.0,
				"stock":       1,
			},
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "negative price",
			body: map[string]any{
				"title":       "Test",
				"author":      "Jane Doe",
				"description": "desc",
				"price":       -1.0,
				"stock":       1,
			},
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "malformed body",
			body:           nil, // replaced with a raw reader below
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockRepo := newTestHandler(t)
			tt.setupMock(mockRepo)

			var r *http.Request
			if tt.body == nil {
				r = httptest.NewRequest(http.MethodPost, "/books", strings.NewReader("{not json"))
			} else {
				r = testutil.NewRequest(http.MethodPost, "/books", tt.body)
			}
			w := httptest.NewRecorder()

			handler.Create(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHTTPHandler_Get(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	id := primitive.NewObjectID()

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), id).Return(Book{ID: id, Title: "Test"}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/"+id.Hex(), nil)
		r.SetPathValue("id", id.Hex())

		handler.Get(w, r)

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusOK)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "Test", data["title"])
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), id).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/"+id.Hex(), nil)
		r.SetPathValue("id", id.Hex())

		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unparseable id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/garbage", nil)
		r.SetPathValue("id", "garbage")

		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), id).Return(Book{}, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/"+id.Hex(), nil)
		r.SetPathValue("id", id.Hex())

		handler.Get(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_List(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any(), PageSize, 0).Return([]Book{{Title: "Test"}}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books?page=1", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("page 3 skips two windows", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any(), PageSize, 2*PageSize).Return([]Book{}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books?page=3", nil)

		handler.List(w, r)

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusOK)
		assert.Equal(t, true, resp.Body["success"])
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any(), PageSize, 0).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	id := primitive.NewObjectID()
	stored := Book{ID: id, Title: "Old", Author: "Jane Doe", Price: 50, Stock: 3}

	t.Run("empty body returns the unchanged record", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().Get(gomock.Any(), id).Return(stored, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/"+id.Hex(), map[string]any{})
		r.SetPathValue("id", id.Hex())

		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusOK)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "Old", data["title"])
	})

	t.Run("partial update changes only supplied fields", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)

		updated := stored
		updated.Stock = 10
		gomock.InOrder(
			mockRepo.EXPECT().Get(gomock.Any(), id).Return(stored, nil),
			mockRepo.EXPECT().Update(gomock.Any(), id, Update{Stock: intPtr(10)}).Return(nil),
			mockRepo.EXPECT().Get(gomock.Any(), id).Return(updated, nil),
		)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/"+id.Hex(), map[string]any{"stock": 10})
		r.SetPathValue("id", id.Hex())

		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusOK)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, float64(10), data["stock"])
		assert.Equal(t, "Old", data["title"])
	})

	t.Run("nonexistent id", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().Get(gomock.Any(), id).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/"+id.Hex(), map[string]any{"title": "New"})
		r.SetPathValue("id", id.Hex())

		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("field bounds still apply", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/"+id.Hex(), map[string]any{"description": strings.Repeat("x", 301)})
		r.SetPathValue("id", id.Hex())

		handler.Update(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	id := primitive.NewObjectID()

	t.Run("first delete succeeds with no content", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodDelete, "/books/"+id.Hex(), nil)
		r.SetPathValue("id", id.Hex())

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("second delete of the same id is not found", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), id).Return(ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodDelete, "/books/"+id.Hex(), nil)
		r.SetPathValue("id", id.Hex())

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Search(t *testing.T) {
	t.Run("combined filters with AND semantics", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)

		mockRepo.EXPECT().
			Search(gomock.Any(), Query{
				Title:       "web",
				Author:      "doe",
				FilterPrice: true,
				MinPrice:    10,
				MaxPrice:    60,
				SortBy:      "title",
				Limit:       PageSize,
				Offset:      0,
			}).
			Return([]Book{{Title: "Web Backend"}}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/search?title=web&author=doe&min_price=10&max_price=60", nil)

		handler.Search(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("absent filters default to match all and price 0..1000", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)

		mockRepo.EXPECT().
			Search(gomock.Any(), Query{FilterPrice: true, MinPrice: 0, MaxPrice: 1000, SortBy: "title", Limit: PageSize}).
			Return([]Book{}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/search", nil)

		handler.Search(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("min above max fails regardless of other filters", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/search?title=web&min_price=10&max_price=5", nil)

		handler.Search(w, r)

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusUnprocessableEntity)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_RANGE", errBody["code"])
	})
}

func TestHTTPHandler_SearchByField(t *testing.T) {
	t.Run("title endpoint sorts by title and matches any price", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().
			Search(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q Query) ([]Book, error) {
				assert.Equal(t, "go", q.Title)
				assert.Equal(t, "title", q.SortBy)
				assert.False(t, q.FilterPrice, "title-only search must not constrain price")
				return []Book{{Title: "Go Basics", Price: 1500}}, nil
			})

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/search/title/go", nil)
		r.SetPathValue("title", "go")

		handler.SearchByTitle(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("author endpoint sorts by author and matches any price", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().
			Search(gomock.Any(), Query{Author: "doe", SortBy: "author", Limit: PageSize}).
			Return([]Book{}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/search/author/doe", nil)
		r.SetPathValue("author", "doe")

		handler.SearchByAuthor(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("price endpoint sorts by price and validates the range", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().
			Search(gomock.Any(), Query{FilterPrice: true, MinPrice: 5, MaxPrice: 20, SortBy: "price", Limit: PageSize}).
			Return([]Book{}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/search/price?min_price=5&max_price=20", nil)

		handler.SearchByPrice(w, r)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		r = testutil.NewRequest(http.MethodGet, "/search/price?min_price=20&max_price=5", nil)

		handler.SearchByPrice(w, r)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHTTPHandler_AddStock(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name           string
		query          string
		setupMock      func(m *MockRepository)
		expectedStatus int
	}{
		{
			name:  "adds stock",
			query: "?qty=5",
			setupMock: func(m *MockRepository) {
				m.EXPECT().AddStock(gomock.Any(), id, 5).Return(Book{ID: id, Stock: 8}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing qty",
			query:          "",
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "non-positive qty",
			query:          "?qty=0",
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:  "missing book",
			query: "?qty=5",
			setupMock: func(m *MockRepository) {
				m.EXPECT().AddStock(gomock.Any(), id, 5).Return(Book{}, ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockRepo := newTestHandler(t)
			tt.setupMock(mockRepo)

			w := httptest.NewRecorder()
			r := testutil.NewRequest(http.MethodPut, "/"+id.Hex()+"/addStock"+tt.query, nil)
			r.SetPathValue("id", id.Hex())

			handler.AddStock(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHTTPHandler_AddSale(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("sale within stock returns the updated record", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().
			RegisterSale(gomock.Any(), id, 2).
			Return(Book{ID: id, Stock: 1, Sold: 12}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/"+id.Hex()+"/addSale?qty=2", nil)
		r.SetPathValue("id", id.Hex())

		handler.AddSale(w, r)

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusOK)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["stock"])
		assert.Equal(t, float64(12), data["sold"])
	})

	t.Run("insufficient stock", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().
			RegisterSale(gomock.Any(), id, 100).
			Return(Book{}, ErrInsufficientStock)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/"+id.Hex()+"/addSale?qty=100", nil)
		r.SetPathValue("id", id.Hex())

		handler.AddSale(w, r)

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusUnprocessableEntity)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "INSUFFICIENT_STOCK", errBody["code"])
	})

	t.Run("missing book", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().
			RegisterSale(gomock.Any(), id, 2).
			Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/"+id.Hex()+"/addSale?qty=2", nil)
		r.SetPathValue("id", id.Hex())

		handler.AddSale(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-positive qty fails before any store call", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/"+id.Hex()+"/addSale?qty=-3", nil)
		r.SetPathValue("id", id.Hex())

		handler.AddSale(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
