// Package fakeapi is a dummyjson-compatible upstream for local
// development and tests: password login with real expiring bearer
// tokens, plus searchable user and product fixtures.
package fakeapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

type Server struct {
	tokens   *tokenIssuer
	accounts []account
	users    []upstream.UserRecord
	products []upstream.ProductRecord
}

func New(secret string) *Server {
	return &Server{
		tokens:   newTokenIssuer(secret),
		accounts: seedAccounts(),
		users:    seedUsers(),
		products: seedProducts(),
	}
}

// Router builds the gin engine serving the upstream API surface.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/auth/login", s.login)
	router.GET("/auth/me", s.me)
	router.POST("/auth/refresh", s.refresh)

	router.GET("/users", s.listUsers)
	router.GET("/users/search", s.searchUsers)

	router.GET("/products", s.listProducts)
	router.GET("/products/search", s.searchProducts)
	router.GET("/products/categories", s.categories)
	router.GET("/products/category/:slug", s.productsByCategory)

	return router
}

func (s *Server) listUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	c.JSON(http.StatusOK, pageOfUsers(s.users, limit, skip))
}

func (s *Server) searchUsers(c *gin.Context) {
	q := strings.ToLower(c.Query("q"))

	matched := make([]upstream.UserRecord, 0)
	for _, u := range s.users {
		haystack := strings.ToLower(u.FirstName + " " + u.LastName + " " + u.Email)
		if q == "" || strings.Contains(haystack, q) {
			matched = append(matched, u)
		}
	}

	c.JSON(http.StatusOK, pageOfUsers(matched, len(matched), 0))
}

func (s *Server) listProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	c.JSON(http.StatusOK, pageOfProducts(s.products, limit, skip))
}

func (s *Server) searchProducts(c *gin.Context) {
	q := strings.ToLower(c.Query("q"))

	matched := make([]upstream.ProductRecord, 0)
	for _, p := range s.products {
		haystack := strings.ToLower(p.Title + " " + p.Description)
		if q == "" || strings.Contains(haystack, q) {
			matched = append(matched, p)
		}
	}

	c.JSON(http.StatusOK, pageOfProducts(matched, len(matched), 0))
}

func (s *Server) productsByCategory(c *gin.Context) {
	slug := c.Param("slug")

	matched := make([]upstream.ProductRecord, 0)
	for _, p := range s.products {
		if p.Category == slug {
			matched = append(matched, p)
		}
	}

	c.JSON(http.StatusOK, pageOfProducts(matched, len(matched), 0))
}

func (s *Server) categories(c *gin.Context) {
	seen := map[string]bool{}
	categories := make([]upstream.Category, 0)
	for _, p := range s.products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, upstream.Category{
			Slug: p.Category,
			Name: categoryName(p.Category),
		})
	}

	c.JSON(http.StatusOK, categories)
}

func categoryName(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func pageOfUsers(users []upstream.UserRecord, limit, skip int) upstream.UserPage {
	total := len(users)
	window := sliceWindow(total, limit, skip)
	return upstream.UserPage{
		Users: users[window[0]:window[1]],
		Total: total,
		Skip:  skip,
		Limit: limit,
	}
}

func pageOfProducts(products []upstream.ProductRecord, limit, skip int) upstream.ProductPage {
	total := len(products)
	window := sliceWindow(total, limit, skip)
	return upstream.ProductPage{
		Products: products[window[0]:window[1]],
		Total:    total,
		Skip:     skip,
		Limit:    limit,
	}
}

func sliceWindow(total, limit, skip int) [2]int {
	if skip < 0 {
		skip = 0
	}
	if skip > total {
		skip = total
	}
	end := skip + limit
	if limit <= 0 || end > total {
		end = total
	}
	return [2]int{skip, end}
}
