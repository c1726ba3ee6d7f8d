package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giriraj47/helpstudyabroad/internal/catalog"
	"github.com/giriraj47/helpstudyabroad/internal/logger"
	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

// ListProducts serves the offerings list, optionally narrowed to one
// category. "all" (or no category) is the plain first page.
func (h *Handler) ListProducts(c *gin.Context) {
	category := c.DefaultQuery("category", "all")

	var (
		page *upstream.ProductPage
		err  error
	)
	if category == "all" {
		page, err = h.client.ListProducts(c.Request.Context(), defaultPageLimit, 0)
	} else {
		page, err = h.client.ProductsByCategory(c.Request.Context(), category)
	}
	if err != nil {
		logger.Error("products listing failed", map[string]any{
			"category": category,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch products"})
		return
	}

	products := make([]catalog.Product, 0, len(page.Products))
	for _, p := range page.Products {
		products = append(products, catalog.TransformProduct(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    page.Total,
		"category": category,
	})
}

// ProductCategories returns the category slugs with "all" prepended.
func (h *Handler) ProductCategories(c *gin.Context) {
	categories, err := h.client.ProductCategories(c.Request.Context())
	if err != nil {
		logger.Error("categories fetch failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch categories"})
		return
	}

	names := make([]string, 0, len(categories)+1)
	names = append(names, "all")
	for _, cat := range categories {
		names = append(names, cat.Slug)
	}

	c.JSON(http.StatusOK, gin.H{"categories": names})
}

// SearchProducts answers from the products query cache.
func (h *Handler) SearchProducts(c *gin.Context) {
	cache, err := h.productCache(c.Request.Context())
	if err != nil {
		logger.Error("products cache seeding failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch products"})
		return
	}

	cache.Query(c.Request.Context(), c.Query("q"))

	snapshot := cache.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"products": snapshot.Records,
		"error":    snapshot.Error,
	})
}
