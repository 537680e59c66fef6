package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zoo_management/pkg/casing"
	"zoo_management/pkg/resources"
)

func (h *Handler) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "error",
			"database": "unreachable",
			"error":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getZooInfo(c *gin.Context) {
	info, err := h.store.ZooInfo(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch zoo info")
		return
	}
	c.JSON(http.StatusOK, casing.MapToWire(info))
}

func (h *Handler) getDashboardStats(c *gin.Context) {
	stats, err := h.store.DashboardStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) registerForEvent(c *gin.Context) {
	var payload resources.EventRegistrationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondError(c, bindError(err), "")
		return
	}

	event, err := h.store.RegisterForEvent(c.Request.Context(), c.Param("id"), payload.Quantity)
	if err != nil {
		h.respondError(c, err, "Failed to register for event")
		return
	}
	c.JSON(http.StatusOK, casing.MapToWire(event))
}
