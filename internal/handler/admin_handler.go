package handler

import (
	"net/http"

	"runway-tickets/internal/model"
	"runway-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	shows       service.ShowService
	ticketTypes service.TicketTypeService
	stats       service.StatsService
}

func NewAdminHandler(shows service.ShowService, ticketTypes service.TicketTypeService, stats service.StatsService) *AdminHandler {
	return &AdminHandler{
		shows:       shows,
		ticketTypes: ticketTypes,
		stats:       stats,
	}
}

// RegisterRoutes guard 為 nil 時不檢查權限
func (h *AdminHandler) RegisterRoutes(r *gin.Engine, guard gin.HandlerFunc) {
	router := r.Group("/api/admin")
	if guard != nil {
		router.Use(guard)
	}
	{
		router.GET("shows", h.ListShows)
		router.POST("shows", h.CreateShow)
		router.PUT("shows", h.UpdateShow)
		router.DELETE("shows", h.DeleteShow)

		router.GET("ticket-types", h.ListTicketTypes)
		router.POST("ticket-types", h.CreateTicketType)
		router.PUT("ticket-types", h.UpdateTicketType)
		router.DELETE("ticket-types", h.DeleteTicketType)

		router.GET("stats", h.Stats)
	}
}

func (h *AdminHandler) ListShows(c *gin.Context) {
	shows, err := h.shows.ListAll(c)
	if err != nil {
		handleError(c, err, "ListShows", "Failed to fetch shows")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shows": shows})
}

func (h *AdminHandler) CreateShow(c *gin.Context) {
	var req model.ShowInput
	if err := BindJson(c, &req); err != nil {
		return
	}
	show, err := h.shows.Create(c, req)
	if err != nil {
		handleError(c, err, "CreateShow", "Failed to create show")
		return
	}
	c.JSON(http.StatusOK, gin.H{"show": show})
}

func (h *AdminHandler) UpdateShow(c *gin.Context) {
	var req model.ShowInput
	if err := BindJson(c, &req); err != nil {
		return
	}
	show, err := h.shows.Update(c, req)
	if err != nil {
		handleError(c, err, "UpdateShow", "Failed to update show")
		return
	}
	c.JSON(http.StatusOK, gin.H{"show": show})
}

func (h *AdminHandler) DeleteShow(c *gin.Context) {
	if err := h.shows.Delete(c, c.Query("id")); err != nil {
		handleError(c, err, "DeleteShow", "Failed to delete show")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) ListTicketTypes(c *gin.Context) {
	ticketTypes, err := h.ticketTypes.ListByShow(c, c.Query("showId"))
	if err != nil {
		handleError(c, err, "ListTicketTypes", "Failed to fetch ticket types")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketTypes": ticketTypes})
}

func (h *AdminHandler) CreateTicketType(c *gin.Context) {
	var req model.TicketTypeInput
	if err := BindJson(c, &req); err != nil {
		return
	}
	tt, err := h.ticketTypes.Create(c, req)
	if err != nil {
		handleError(c, err, "CreateTicketType", "Failed to create ticket type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketType": tt})
}

func (h *AdminHandler) UpdateTicketType(c *gin.Context) {
	var req model.TicketTypeInput
	if err := BindJson(c, &req); err != nil {
		return
	}
	tt, err := h.ticketTypes.Update(c, req)
	if err != nil {
		handleError(c, err, "UpdateTicketType", "Failed to update ticket type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketType": tt})
}

func (h *AdminHandler) DeleteTicketType(c *gin.Context) {
	if err := h.ticketTypes.Delete(c, c.Query("id")); err != nil {
		handleError(c, err, "DeleteTicketType", "Failed to delete ticket type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.stats.GetAdminStats(c)
	if err != nil {
		handleError(c, err, "Stats", "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"shows":   stats.TotalShows,
			"tickets": stats.TotalTickets,
			"users":   stats.TotalUsers,
			"videos":  stats.TotalVideos,
			"revenue": stats.TotalRevenue.InexactFloat64(),
		},
		"recentShows":   stats.RecentShows,
		"recentTickets": stats.RecentTickets,
	})
}
