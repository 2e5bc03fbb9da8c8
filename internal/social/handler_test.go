package social

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristanguckenberger/srcdoc-server/internal/live"
	"github.com/tristanguckenberger/srcdoc-server/internal/notify"
)

type memSocialStore struct {
	users     map[string]UserSummary
	games     map[string]GameSummary
	follows   []Follow
	favorites []Favorite
	comments  []Comment
}

func newMemSocialStore() *memSocialStore {
	return &memSocialStore{
		users: make(map[string]UserSummary),
		games: make(map[string]GameSummary),
	}
}

func (m *memSocialStore) GetUser(ctx context.Context, userID string) (*UserSummary, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memSocialStore) GetGame(ctx context.Context, gameID string) (*GameSummary, error) {
	g, ok := m.games[gameID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (m *memSocialStore) CreateFollow(ctx context.Context, followerID, followingID string) (*Follow, error) {
	f := Follow{ID: "f1", FollowerID: followerID, FollowingID: followingID, CreatedAt: time.Now()}
	m.follows = append(m.follows, f)
	return &f, nil
}

func (m *memSocialStore) ListFollowers(ctx context.Context, userID string) ([]UserSummary, error) {
	return nil, nil
}

func (m *memSocialStore) ListFollowing(ctx context.Context, userID string) ([]UserSummary, error) {
	return nil, nil
}

func (m *memSocialStore) CreateFavorite(ctx context.Context, userID, gameID string) (*Favorite, error) {
	f := Favorite{ID: "fav1", UserID: userID, GameID: gameID, CreatedAt: time.Now()}
	m.favorites = append(m.favorites, f)
	return &f, nil
}

func (m *memSocialStore) FindFavorite(ctx context.Context, gameID, userID string) (*Favorite, error) {
	for _, f := range m.favorites {
		if f.GameID == gameID && f.UserID == userID {
			return &f, nil
		}
	}
	return nil, nil
}

func (m *memSocialStore) DeleteFavorite(ctx context.Context, favoriteID string) error {
	return nil
}

func (m *memSocialStore) CreateComment(ctx context.Context, userID, gameID, text string) (*Comment, error) {
	c := Comment{ID: "c1", UserID: userID, GameID: gameID, CommentText: text, CreatedAt: time.Now()}
	m.comments = append(m.comments, c)
	return &c, nil
}

type memNotifyStore struct {
	created []notify.Notification
}

func (m *memNotifyStore) Create(ctx context.Context, in notify.Input) (*notify.Notification, error) {
	n := notify.Notification{
		ID:         "n1",
		Recipient:  in.Recipient,
		Sender:     in.Sender,
		Type:       in.Type,
		EntityID:   in.EntityID,
		EntityType: in.EntityType,
		Message:    in.Message,
		CreatedAt:  time.Now(),
	}
	m.created = append(m.created, n)
	return &n, nil
}

func (m *memNotifyStore) ListByRecipient(ctx context.Context, recipient string, limit, offset int) ([]notify.Notification, int, error) {
	return nil, 0, nil
}

func (m *memNotifyStore) MarkRead(ctx context.Context, recipient string, ids []string) ([]notify.Notification, error) {
	return nil, nil
}

type capturePusher struct {
	pushed [][]byte
}

func (p *capturePusher) Push(payload []byte) error {
	p.pushed = append(p.pushed, payload)
	return nil
}

func setupSocialRouter(store Store, dispatcher *notify.Dispatcher, asUser string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/api")
	group.Use(func(c *gin.Context) {
		if asUser != "" {
			c.Set("userID", asUser)
		}
		c.Next()
	})

	h := NewHandler(store, dispatcher)
	h.RegisterRoutes(group, group)
	return router
}

func TestFollowNotifiesFollowedUser(t *testing.T) {
	store := newMemSocialStore()
	store.users["42"] = UserSummary{ID: "42", Username: "grace"}
	store.users["7"] = UserSummary{ID: "7", Username: "alan"}

	notifyStore := &memNotifyStore{}
	registry := live.NewRegistry()
	handle := &capturePusher{}
	registry.Register("42", handle)

	router := setupSocialRouter(store, notify.NewDispatcher(notifyStore, registry), "7")

	body, _ := json.Marshal(map[string]string{"userId": "42"})
	req := httptest.NewRequest(http.MethodPost, "/api/follows/add", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	// one durable row, unread, and exactly one live push
	require.Len(t, notifyStore.created, 1)
	n := notifyStore.created[0]
	assert.Equal(t, "42", n.Recipient)
	assert.Equal(t, "7", n.Sender)
	assert.Equal(t, "follow", n.Type)
	assert.False(t, n.Read)
	assert.Equal(t, "alan started following you", n.Message)

	require.Len(t, handle.pushed, 1)
}

func TestCommentOnOwnGameSkipsNotification(t *testing.T) {
	store := newMemSocialStore()
	store.users["7"] = UserSummary{ID: "7", Username: "alan"}
	store.games["g1"] = GameSummary{ID: "g1", OwnerID: "7", Title: "Maze"}

	notifyStore := &memNotifyStore{}
	router := setupSocialRouter(store, notify.NewDispatcher(notifyStore, live.NewRegistry()), "7")

	body, _ := json.Marshal(map[string]string{"gameId": "g1", "commentText": "neat"})
	req := httptest.NewRequest(http.MethodPost, "/api/comments/create", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, notifyStore.created)
	assert.Len(t, store.comments, 1)
}

func TestFavoriteUnknownGameIs404(t *testing.T) {
	store := newMemSocialStore()
	store.users["7"] = UserSummary{ID: "7", Username: "alan"}

	router := setupSocialRouter(store, notify.NewDispatcher(&memNotifyStore{}, live.NewRegistry()), "7")

	body, _ := json.Marshal(map[string]string{"gameId": "missing"})
	req := httptest.NewRequest(http.MethodPost, "/api/favorites/add", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteNotifiesOwnerOffline(t *testing.T) {
	store := newMemSocialStore()
	store.users["7"] = UserSummary{ID: "7", Username: "alan"}
	store.games["g1"] = GameSummary{ID: "g1", OwnerID: "42", Title: "Maze"}

	notifyStore := &memNotifyStore{}
	router := setupSocialRouter(store, notify.NewDispatcher(notifyStore, live.NewRegistry()), "7")

	body, _ := json.Marshal(map[string]string{"gameId": "g1"})
	req := httptest.NewRequest(http.MethodPost, "/api/favorites/add", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// recipient offline: row persisted, request still succeeds
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, notifyStore.created, 1)
	assert.Equal(t, "42", notifyStore.created[0].Recipient)
	assert.Equal(t, `alan liked "Maze"`, notifyStore.created[0].Message)
}
