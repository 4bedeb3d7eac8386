package handler

import (
	"errors"
	"net/http"
	"testing"

	"runway-tickets/internal/mocks/services"
	"runway-tickets/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCatalogRouter() (*gin.Engine, *services.ShowServiceMock, *services.VideoServiceMock) {
	shows := services.NewShowServiceMock()
	videos := services.NewVideoServiceMock()
	router := gin.New()
	NewCatalogHandler(shows, videos).RegisterRoutes(router)
	return router, shows, videos
}

func TestCatalogHandler_ListShows(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, shows, _ := setupCatalogRouter()
		minPrice := int64(7500)
		shows.On("ListPublished", mock.Anything).Return([]*model.ShowWithTicketTypes{
			{Show: model.Show{Title: "Miami Swim Week 2025"}, TicketTypes: []*model.TicketType{{PriceUsd: 7500}}, MinPrice: &minPrice},
		}, nil).Once()

		w := serve(router, createJSONHTTPRequest(http.MethodGet, "/api/shows", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		list := body["shows"].([]interface{})
		require.Len(t, list, 1)
		first := list[0].(map[string]interface{})
		assert.Equal(t, "Miami Swim Week 2025", first["title"])
		assert.Equal(t, float64(7500), first["minPrice"])
		shows.AssertExpectations(t)
	})

	t.Run("Failed - repository error", func(t *testing.T) {
		router, shows, _ := setupCatalogRouter()
		shows.On("ListPublished", mock.Anything).Return(nil, errors.New("db down")).Once()

		w := serve(router, createJSONHTTPRequest(http.MethodGet, "/api/shows", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to fetch shows", decodeBody(t, w)["error"])
	})
}

func TestCatalogHandler_ListVideos(t *testing.T) {
	router, _, videos := setupCatalogRouter()
	videos.On("List", mock.Anything).Return([]*model.Video{{YoutubeID: "ll1TPIm_XlQ", IsFeatured: true}}, nil).Once()

	w := serve(router, createJSONHTTPRequest(http.MethodGet, "/api/videos", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["videos"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "ll1TPIm_XlQ", list[0].(map[string]interface{})["youtubeId"])
}
