package handler

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/giriraj47/helpstudyabroad/internal/catalog"
	"github.com/giriraj47/helpstudyabroad/internal/session"
	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

const (
	defaultPageLimit = 10
)

// Handler serves the auth endpoints and the catalog listings. It owns
// the per-collection query caches: each is created when its list view
// first loads and discarded again on logout, so nothing cached leaks
// across sessions.
type Handler struct {
	store  *session.Store
	client *upstream.Client

	mu       sync.Mutex
	users    *catalog.UserCache
	products *catalog.ProductCache
}

func NewHandler(store *session.Store, client *upstream.Client) *Handler {
	return &Handler{
		store:  store,
		client: client,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/session", h.Session)
	api.GET("/auth/session/stream", h.SessionStream)

	api.GET("/users", h.ListUsers)
	api.GET("/users/search", h.SearchUsers)

	api.GET("/products", h.ListProducts)
	api.GET("/products/categories", h.ProductCategories)
	api.GET("/products/search", h.SearchProducts)
}

// userCache returns the users cache, creating and seeding it with the
// upstream initial page on first use.
func (h *Handler) userCache(ctx context.Context) (*catalog.UserCache, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.users != nil {
		return h.users, nil
	}

	page, err := h.client.ListUsers(ctx, defaultPageLimit, 0)
	if err != nil {
		return nil, err
	}

	seed := make([]catalog.User, 0, len(page.Users))
	for _, u := range page.Users {
		seed = append(seed, catalog.TransformUser(u))
	}

	cache := catalog.NewUserCache(h.client.SearchUsers)
	cache.Seed(seed)
	h.users = cache
	return cache, nil
}

// productCache mirrors userCache for the products collection.
func (h *Handler) productCache(ctx context.Context) (*catalog.ProductCache, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.products != nil {
		return h.products, nil
	}

	page, err := h.client.ListProducts(ctx, defaultPageLimit, 0)
	if err != nil {
		return nil, err
	}

	seed := make([]catalog.Product, 0, len(page.Products))
	for _, p := range page.Products {
		seed = append(seed, catalog.TransformProduct(p))
	}

	cache := catalog.NewProductCache(h.client.SearchProducts)
	cache.Seed(seed)
	h.products = cache
	return cache, nil
}

// dropCaches discards both collection caches (session teardown).
func (h *Handler) dropCaches() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.users = nil
	h.products = nil
}
