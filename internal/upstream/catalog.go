package upstream

import (
	"context"
	"fmt"
	"net/url"
)

// UserRecord is the raw upstream user, trimmed to the fields the
// directory listing consumes.
type UserRecord struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Role      string `json:"role"`
	Address   struct {
		Country string `json:"country"`
	} `json:"address"`
	Company struct {
		Department string `json:"department"`
	} `json:"company"`
}

// ProductRecord is the raw upstream product.
type ProductRecord struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Rating      float64  `json:"rating"`
	Thumbnail   string   `json:"thumbnail"`
}

// UserPage wraps an upstream user listing with its pagination envelope.
type UserPage struct {
	Users []UserRecord `json:"users"`
	Total int          `json:"total"`
	Skip  int          `json:"skip"`
	Limit int          `json:"limit"`
}

// ProductPage wraps an upstream product listing.
type ProductPage struct {
	Products []ProductRecord `json:"products"`
	Total    int             `json:"total"`
	Skip     int             `json:"skip"`
	Limit    int             `json:"limit"`
}

// Category is one entry of the upstream category index.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (c *Client) ListUsers(ctx context.Context, limit, skip int) (*UserPage, error) {
	var page UserPage
	path := fmt.Sprintf("/users?limit=%d&skip=%d", limit, skip)
	if err := c.getJSON(ctx, path, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]UserRecord, error) {
	var page UserPage
	path := "/users/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, "", &page); err != nil {
		return nil, err
	}
	return page.Users, nil
}

func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*ProductPage, error) {
	var page ProductPage
	path := fmt.Sprintf("/products?limit=%d&skip=%d", limit, skip)
	if err := c.getJSON(ctx, path, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) (*ProductPage, error) {
	var page ProductPage
	path := "/products/category/" + url.PathEscape(category)
	if err := c.getJSON(ctx, path, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]ProductRecord, error) {
	var page ProductPage
	path := "/products/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, "", &page); err != nil {
		return nil, err
	}
	return page.Products, nil
}

func (c *Client) ProductCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "/products/categories", "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
