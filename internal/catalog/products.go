package catalog

import (
	"strconv"

	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

// popularRatingFloor marks a product as popular above this rating.
const popularRatingFloor = 4.5

// Product is the offerings-listing projection of an upstream product.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
	Image       string   `json:"image"`
}

// TransformProduct maps a raw upstream product to its offering entry.
func TransformProduct(p upstream.ProductRecord) Product {
	features := p.Tags
	if features == nil {
		features = []string{}
	}

	return Product{
		ID:          p.ID,
		Name:        p.Title,
		Description: p.Description,
		Price:       "$" + strconv.FormatFloat(p.Price, 'f', -1, 64),
		Category:    p.Category,
		Features:    features,
		Popular:     p.Rating > popularRatingFloor,
		Image:       p.Thumbnail,
	}
}

// ProductCache is the products-collection query cache.
type ProductCache = Cache[upstream.ProductRecord, Product]

func NewProductCache(search SearchFunc[upstream.ProductRecord]) *ProductCache {
	return NewCache(search, TransformProduct)
}
