package feed

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFeedRouter(h *Handler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/feed")
	group.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	})
	h.RegisterRoutes(group)
	return router
}

func TestSimpleFeedHandlerCachesPerUser(t *testing.T) {
	source := &fakeSource{
		games: []Event{
			{UserID: "u2", Username: "ada", ItemType: ItemTypeGame, TargetID: "g1", Timestamp: feedNow.Add(-time.Hour)},
		},
	}
	a := newTestAggregator(source, 50)
	h := NewHandler(a, time.Minute)
	defer h.Close()

	router := setupFeedRouter(h, "u1")

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed/simple", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"g1"`)
	}

	// second request is served from cache, not the source
	assert.Equal(t, 1, source.queries)
}

func TestSimpleFeedHandlerRequiresUser(t *testing.T) {
	h := NewHandler(newTestAggregator(&fakeSource{}, 50), time.Minute)
	defer h.Close()

	router := setupFeedRouter(h, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed/simple", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimpleFeedHandlerEmptyFeedIsEmptyArray(t *testing.T) {
	h := NewHandler(newTestAggregator(&fakeSource{}, 50), time.Minute)
	defer h.Close()

	router := setupFeedRouter(h, "u1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed/simple", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestFeedHandlerClose(t *testing.T) {
	h := NewHandler(newTestAggregator(&fakeSource{}, 50), time.Minute)

	// must stop the eviction loop without panicking, repeatedly
	h.Close()
	h.Close()
}
