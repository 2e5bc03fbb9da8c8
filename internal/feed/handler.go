package feed

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"
)

// Handler serves the feed routes. Merged feeds are cached briefly per
// user to keep repeated polling off the database.
type Handler struct {
	aggregator *Aggregator
	cache      *ttlcache.Cache[string, []Event]
}

func NewHandler(aggregator *Aggregator, cacheTTL time.Duration) *Handler {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, []Event](cacheTTL),
		ttlcache.WithDisableTouchOnHit[string, []Event](),
	)
	go cache.Start()

	return &Handler{
		aggregator: aggregator,
		cache:      cache,
	}
}

// Close stops the cache eviction loop started by NewHandler.
func (h *Handler) Close() {
	h.cache.Stop()
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/feed/simple", h.simple)
}

func (h *Handler) simple(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	if item := h.cache.Get(userID); item != nil {
		c.JSON(http.StatusOK, item.Value())
		return
	}

	events, err := h.aggregator.SimpleFeed(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build feed"})
		return
	}
	if events == nil {
		events = []Event{}
	}

	h.cache.Set(userID, events, ttlcache.DefaultTTL)

	c.JSON(http.StatusOK, events)
}
