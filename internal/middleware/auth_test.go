package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristanguckenberger/srcdoc-server/internal/auth"
)

type fakeTokenStore struct {
	tokens  map[string]auth.Token
	deleted []string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]auth.Token{}}
}

func (f *fakeTokenStore) Create(_ context.Context, t auth.Token) error {
	f.tokens[t.TokenID] = t
	return nil
}

func (f *fakeTokenStore) Get(_ context.Context, tokenID string) (*auth.Token, error) {
	t, ok := f.tokens[tokenID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, tokenID string) error {
	delete(f.tokens, tokenID)
	f.deleted = append(f.deleted, tokenID)
	return nil
}

func setupAuthRouter(store auth.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewAuthMiddleware(store)

	router := gin.New()
	router.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserIDKey)})
	})
	router.GET("/open", mw.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserIDKey)})
	})
	return router
}

func TestRequireAuthValidToken(t *testing.T) {
	store := newFakeTokenStore()
	require.NoError(t, store.Create(context.Background(), auth.Token{
		TokenID:   "t1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	router := setupAuthRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer t1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
}

func TestRequireAuthExpiredTokenDeletes(t *testing.T) {
	store := newFakeTokenStore()
	store.tokens["t1"] = auth.Token{
		TokenID:   "t1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	router := setupAuthRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer t1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"t1"}, store.deleted)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := setupAuthRouter(newFakeTokenStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router := setupAuthRouter(newFakeTokenStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthUnknownToken(t *testing.T) {
	router := setupAuthRouter(newFakeTokenStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	router := setupAuthRouter(newFakeTokenStore())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)
}

func TestOptionalAuthResolvesIdentity(t *testing.T) {
	store := newFakeTokenStore()
	require.NoError(t, store.Create(context.Background(), auth.Token{
		TokenID:   "t1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	router := setupAuthRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer t1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
}
