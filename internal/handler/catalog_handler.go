package handler

import (
	"net/http"

	"runway-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler 公開的秀展與影片列表
type CatalogHandler struct {
	shows  service.ShowService
	videos service.VideoService
}

func NewCatalogHandler(shows service.ShowService, videos service.VideoService) *CatalogHandler {
	return &CatalogHandler{shows: shows, videos: videos}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api")
	{
		router.GET("shows", h.ListShows)
		router.GET("videos", h.ListVideos)
	}
}

func (h *CatalogHandler) ListShows(c *gin.Context) {
	shows, err := h.shows.ListPublished(c)
	if err != nil {
		handleError(c, err, "ListShows", "Failed to fetch shows")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shows": shows})
}

func (h *CatalogHandler) ListVideos(c *gin.Context) {
	videos, err := h.videos.List(c)
	if err != nil {
		handleError(c, err, "ListVideos", "Failed to fetch videos")
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}
