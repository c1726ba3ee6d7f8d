package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/giriraj47/helpstudyabroad/internal/catalog"
	"github.com/giriraj47/helpstudyabroad/internal/logger"
)

// ListUsers serves a paginated directory page straight from upstream.
func (h *Handler) ListUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	skip := (page - 1) * limit

	result, err := h.client.ListUsers(c.Request.Context(), limit, skip)
	if err != nil {
		logger.Error("users listing failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch users"})
		return
	}

	users := make([]catalog.User, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, catalog.TransformUser(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": result.Total,
		"page":  page,
		"limit": limit,
	})
}

// SearchUsers answers from the users query cache; only a cache miss
// reaches upstream. On failure the last good list is returned alongside
// the error message.
func (h *Handler) SearchUsers(c *gin.Context) {
	cache, err := h.userCache(c.Request.Context())
	if err != nil {
		logger.Error("users cache seeding failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch users"})
		return
	}

	cache.Query(c.Request.Context(), c.Query("q"))

	snapshot := cache.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"users": snapshot.Records,
		"error": snapshot.Error,
	})
}
