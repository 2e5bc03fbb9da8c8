package playsession

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tristanguckenberger/srcdoc-server/internal/utils"
)

// Handler serves the session and activity routes.
type Handler struct {
	tracker *Tracker
	store   Store
}

func NewHandler(tracker *Tracker, store Store) *Handler {
	return &Handler{
		tracker: tracker,
		store:   store,
	}
}

// RegisterRoutes wires the session surface. Session creation accepts
// anonymous callers, so it lives on the optionally-authenticated
// group; everything mutating goes on the protected group.
func (h *Handler) RegisterRoutes(optional, protected *gin.RouterGroup) {
	optional.POST("/sessions/games/:gameId/create", h.createSession)

	protected.PUT("/sessions/:sessionId", h.finalize)
	protected.POST("/activities/:sessionId/create", h.createActivity)

	optional.GET("/sessions/:sessionId", h.getSession)
	optional.GET("/sessions/users/:userId", h.listByUser)
	optional.GET("/activities/:sessionId/all", h.listActivities)
}

func (h *Handler) createSession(c *gin.Context) {
	gameID := c.Param("gameId")
	if _, err := uuid.Parse(gameID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a valid game id"})
		return
	}

	userID := c.GetString("userID")
	if userID == "" {
		// unauthenticated players still get a session, under a
		// generated anonymous identity
		userID = "anonymous_" + utils.RandomString(9)
	}

	sess, err := h.tracker.CreateSession(c.Request.Context(), gameID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sess)
}

// sessionIDParam validates the path parameter before it reaches a SQL
// uuid cast.
func sessionIDParam(c *gin.Context) (string, bool) {
	sessionID := c.Param("sessionId")
	if _, err := uuid.Parse(sessionID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a valid game session id"})
		return "", false
	}
	return sessionID, true
}

func (h *Handler) getSession(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	sess, err := h.store.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game session not found"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

func (h *Handler) listByUser(c *gin.Context) {
	userID := c.Param("userId")

	sessions, err := h.store.ListSessionsByUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(sessions) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No game sessions found"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

type finalizeRequest struct {
	SessionTotalTime  *string `json:"sessionTotalTime"`
	SessionTotalScore *int64  `json:"sessionTotalScore"`
}

func (h *Handler) finalize(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	// an empty body is a plain "finalize now"
	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	sess, err := h.tracker.Finalize(c.Request.Context(), sessionID, req.SessionTotalTime, req.SessionTotalScore)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

type createActivityRequest struct {
	Action string `json:"action"`
}

func (h *Handler) createActivity(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide an action"})
		return
	}

	action, err := ParseAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Invalid action, %q. Expected Start or Stop.", req.Action),
		})
		return
	}

	activity, err := h.tracker.RecordActivity(c.Request.Context(), sessionID, action)
	if err != nil {
		h.respondConflict(c, sessionID, action, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

func (h *Handler) listActivities(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	activities, err := h.store.ActivitiesBySession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(activities) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No game user activities found"})
		return
	}

	c.JSON(http.StatusOK, activities)
}

// respondConflict maps activity recording failures, naming the session
// and the offending action in the message.
func (h *Handler) respondConflict(c *gin.Context, sessionID string, action Action, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Game session not found"})
	case errors.Is(err, ErrDuplicateStart):
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("Start activity already exists for game session, %s", sessionID),
		})
	case errors.Is(err, ErrStopWithoutStart):
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("Unable to stop session, %s, which has not recorded a 'Start' activity.", sessionID),
		})
	case errors.Is(err, ErrDuplicateStop):
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("Stop activity already exists for game session, %s", sessionID),
		})
	case errors.Is(err, ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Invalid action, %q, for game session, %s", action, sessionID),
		})
	default:
		h.respondError(c, err)
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Game session not found"})
	case errors.Is(err, ErrStartRequired):
		c.JSON(http.StatusConflict, gin.H{
			"message": "Cannot update a game session without a start activity",
		})
	case errors.Is(err, ErrStopRequired):
		c.JSON(http.StatusConflict, gin.H{
			"message": "Cannot update a game session without a stop activity",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
