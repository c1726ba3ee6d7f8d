package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giriraj47/helpstudyabroad/internal/logger"
	"github.com/giriraj47/helpstudyabroad/internal/session"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User            *session.Identity `json:"user"`
	IsAuthenticated bool              `json:"isAuthenticated"`
	IsLoading       bool              `json:"isLoading"`
	Error           string            `json:"error,omitempty"`
}

func toSessionResponse(st session.State) sessionResponse {
	return sessionResponse{
		User:            st.Identity,
		IsAuthenticated: st.IsAuthenticated,
		IsLoading:       st.IsLoading,
		Error:           st.LastError,
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "username and password are required",
		})
		return
	}

	jar := session.NewRequestJar(c.Writer, c.Request)
	outcome := h.store.Login(c.Request.Context(), jar, req.Username, req.Password)

	if !outcome.Success {
		logger.Warn("login rejected", map[string]any{
			"username": req.Username,
			"error":    outcome.Error,
		})
		c.JSON(http.StatusUnauthorized, outcome)
		return
	}

	logger.Info("login succeeded", map[string]any{
		"username": req.Username,
	})
	c.JSON(http.StatusOK, outcome)
}

func (h *Handler) Logout(c *gin.Context) {
	jar := session.NewRequestJar(c.Writer, c.Request)
	h.store.Logout(c.Request.Context(), jar)

	// Caches are per-session state: drop them with the session.
	h.dropCaches()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session restores and verifies the persisted session, then reports the
// snapshot. LoadSession is idempotent, so every page load may call this.
// A request arriving without the cookie while durable storage still
// holds a token gets the cookie reissued on this response.
func (h *Handler) Session(c *gin.Context) {
	jar := session.NewRequestJar(c.Writer, c.Request)
	h.store.LoadSession(c.Request.Context(), jar)

	c.JSON(http.StatusOK, toSessionResponse(h.store.Snapshot()))
}

// SessionStream pushes state snapshots over SSE as the session changes.
func (h *Handler) SessionStream(c *gin.Context) {
	updates := make(chan session.State, 8)
	listener := func(st session.State) {
		select {
		case updates <- st:
		default:
			// Slow consumer: drop the snapshot; the next one supersedes it.
		}
	}

	if err := h.store.Subscribe(listener); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscribe failed"})
		return
	}
	defer func() {
		_ = h.store.Unsubscribe(listener)
	}()

	// Current state first so subscribers never start blank.
	c.SSEvent("session", toSessionResponse(h.store.Snapshot()))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case st := <-updates:
			c.SSEvent("session", toSessionResponse(st))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
