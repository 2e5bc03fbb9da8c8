package notify

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultListLimit = 50

// Handler serves the pull-based notification routes.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/notifications/users/:userId", h.list)
	r.PUT("/notifications/update", h.markRead)
}

func (h *Handler) list(c *gin.Context) {
	userID := c.Param("userId")

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultListLimit
	}
	offset, err := strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	notifications, total, err := h.store.ListByRecipient(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
	})
}

type markReadRequest struct {
	IDs []string `json:"ids"`
}

func (h *Handler) markRead(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "You must be logged in",
		})
		return
	}

	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please pass an array of notification ids",
		})
		return
	}

	for _, id := range req.IDs {
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Please pass valid notification ids",
			})
			return
		}
	}

	updated, err := h.store.MarkRead(c.Request.Context(), userID, req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to update notifications",
		})
		return
	}

	if len(updated) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "No notifications found",
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
