package domain

// Product represents a single supermarket listing as supplied by the caller
type Product struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Supermarket string `json:"supermarket" yaml:"supermarket"`
}

// ProductListing is a product as it appears inside a group (id stripped)
type ProductListing struct {
	Title       string `json:"title" yaml:"title"`
	Supermarket string `json:"supermarket" yaml:"supermarket"`
}

// ProductGroup collects the listings that share one canonical key.
// Category is the title of the first product seen for that key.
type ProductGroup struct {
	Category string           `json:"category" yaml:"category"`
	Count    int              `json:"count" yaml:"count"`
	Products []ProductListing `json:"products" yaml:"products"`
}

// ProductRecord is the wire form of a Product. Pointer fields let callers
// tell a missing field apart from a zero value.
type ProductRecord struct {
	ID          *int64  `json:"id" yaml:"id" binding:"required"`
	Title       *string `json:"title" yaml:"title" binding:"required"`
	Supermarket *string `json:"supermarket" yaml:"supermarket" binding:"required"`
}

// ToProduct converts a validated record. Missing fields become zero values.
func (r ProductRecord) ToProduct() Product {
	var p Product
	if r.ID != nil {
		p.ID = *r.ID
	}
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Supermarket != nil {
		p.Supermarket = *r.Supermarket
	}
	return p
}

// ToProducts converts a batch of validated records, preserving order
func ToProducts(records []ProductRecord) []Product {
	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.ToProduct())
	}
	return products
}

// CanonicalRequest asks for the canonical key of a single title. An empty
// title is valid; only a missing one is rejected.
type CanonicalRequest struct {
	Title *string `json:"title" binding:"required"`
}

// CanonicalResponse pairs a title with its canonical key
type CanonicalResponse struct {
	Title string `json:"title"`
	Key   string `json:"key"`
}
