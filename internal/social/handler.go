package social

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tristanguckenberger/srcdoc-server/internal/logger"
	"github.com/tristanguckenberger/srcdoc-server/internal/notify"
)

// Handler serves the follow/favorite/comment surface. Every mutation
// that concerns another user runs through the notification
// dispatcher; dispatch failures fail the request because the
// notification row is part of the contract.
type Handler struct {
	store      Store
	dispatcher *notify.Dispatcher
}

func NewHandler(store Store, dispatcher *notify.Dispatcher) *Handler {
	return &Handler{
		store:      store,
		dispatcher: dispatcher,
	}
}

func (h *Handler) RegisterRoutes(optional, protected *gin.RouterGroup) {
	protected.POST("/follows/add", h.addFollow)
	protected.POST("/favorites/add", h.addFavorite)
	protected.DELETE("/favorites/delete/:id", h.deleteFavorite)
	protected.POST("/comments/create", h.createComment)

	optional.GET("/follows/followers/:id", h.listFollowers)
	optional.GET("/follows/following/:id", h.listFollowing)
}

type addFollowRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) addFollow(c *gin.Context) {
	followerID := c.GetString("userID")

	var req addFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a user id"})
		return
	}

	if req.UserID == followerID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot follow yourself"})
		return
	}

	followed, err := h.store.GetUser(c.Request.Context(), req.UserID)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if followed == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	follower, err := h.store.GetUser(c.Request.Context(), followerID)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if follower == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	follow, err := h.store.CreateFollow(c.Request.Context(), followerID, req.UserID)
	if err != nil {
		h.internalError(c, err)
		return
	}

	_, err = h.dispatcher.Notify(c.Request.Context(), notify.Input{
		Recipient:  followed.ID,
		Sender:     followerID,
		Type:       "follow",
		EntityID:   followerID,
		EntityType: "user",
		Message:    fmt.Sprintf("%s started following you", follower.Username),
	})
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, follow)
}

func (h *Handler) listFollowers(c *gin.Context) {
	users, err := h.store.ListFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) listFollowing(c *gin.Context) {
	users, err := h.store.ListFollowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type addFavoriteRequest struct {
	GameID string `json:"gameId"`
}

func (h *Handler) addFavorite(c *gin.Context) {
	userID := c.GetString("userID")

	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a game id"})
		return
	}

	game, err := h.store.GetGame(c.Request.Context(), req.GameID)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}

	favorite, err := h.store.CreateFavorite(c.Request.Context(), userID, req.GameID)
	if err != nil {
		h.internalError(c, err)
		return
	}

	// no notification when liking your own game
	if game.OwnerID != userID {
		actor, err := h.store.GetUser(c.Request.Context(), userID)
		if err != nil {
			h.internalError(c, err)
			return
		}

		if actor != nil {
			_, err = h.dispatcher.Notify(c.Request.Context(), notify.Input{
				Recipient:  game.OwnerID,
				Sender:     userID,
				Type:       "favorite",
				EntityID:   game.ID,
				EntityType: "game",
				Message:    fmt.Sprintf("%s liked %q", actor.Username, game.Title),
			})
			if err != nil {
				h.internalError(c, err)
				return
			}
		}
	}

	c.JSON(http.StatusCreated, favorite)
}

func (h *Handler) deleteFavorite(c *gin.Context) {
	userID := c.GetString("userID")
	gameID := c.Param("id")

	favorite, err := h.store.FindFavorite(c.Request.Context(), gameID, userID)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if favorite == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Favorite not found"})
		return
	}

	if err := h.store.DeleteFavorite(c.Request.Context(), favorite.ID); err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite deleted"})
}

type createCommentRequest struct {
	GameID      string `json:"gameId"`
	CommentText string `json:"commentText"`
}

func (h *Handler) createComment(c *gin.Context) {
	userID := c.GetString("userID")

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GameID == "" || req.CommentText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a game id and comment text"})
		return
	}

	game, err := h.store.GetGame(c.Request.Context(), req.GameID)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}

	comment, err := h.store.CreateComment(c.Request.Context(), userID, req.GameID, req.CommentText)
	if err != nil {
		h.internalError(c, err)
		return
	}

	if game.OwnerID != userID {
		actor, err := h.store.GetUser(c.Request.Context(), userID)
		if err != nil {
			h.internalError(c, err)
			return
		}

		if actor != nil {
			_, err = h.dispatcher.Notify(c.Request.Context(), notify.Input{
				Recipient:  game.OwnerID,
				Sender:     userID,
				Type:       "comment",
				EntityID:   comment.ID,
				EntityType: "comment",
				Message:    fmt.Sprintf("%s commented on %q", actor.Username, game.Title),
			})
			if err != nil {
				h.internalError(c, err)
				return
			}
		}
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) internalError(c *gin.Context, err error) {
	logger.Error("social request failed", map[string]any{
		"path":  c.FullPath(),
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
