package report

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_TotalBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)

	t.Run("sums stock across the catalog", func(t *testing.T) {
		mockRepo.EXPECT().TotalStock(gomock.Any()).Return(42, nil)

		got, err := service.TotalBooks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, TotalBooks{BookCount: 42}, got)
	})

	t.Run("empty catalog yields zero, not an error", func(t *testing.T) {
		mockRepo.EXPECT().TotalStock(gomock.Any()).Return(0, nil)

		got, err := service.TotalBooks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, got.BookCount)
	})
}

func TestService_TopSelling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)

	t.Run("requests at most five rows", func(t *testing.T) {
		rows := []TopSeller{
			{Title: "A", Author: "X", CopiesSold: 30},
			{Title: "B", Author: "Y", CopiesSold: 20},
		}
		mockRepo.EXPECT().TopSelling(gomock.Any(), TopN).Return(rows, nil)

		got, err := service.TopSelling(context.Background())
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), TopN)
		for _, row := range got {
			assert.Greater(t, row.CopiesSold, 0)
		}
	})
}

func TestService_TopStockAuthors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)

	t.Run("passes the fixed row cap through", func(t *testing.T) {
		mockRepo.EXPECT().
			TopStockAuthors(gomock.Any(), TopN).
			Return([]AuthorStock{{Author: "Jane Doe", Books: 12}}, nil)

		got, err := service.TopStockAuthors(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []AuthorStock{{Author: "Jane Doe", Books: 12}}, got)
	})
}
