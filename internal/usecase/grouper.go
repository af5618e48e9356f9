package usecase

import "github.com/prateleira/backend/internal/domain"

// KeyFunc maps a product title to the key products are grouped by
type KeyFunc func(title string) string

// GroupProducts partitions products by their canonical title key.
// Groups come out in the order their key was first seen and keep the
// arrival order of their products.
func GroupProducts(products []domain.Product) []domain.ProductGroup {
	return GroupProductsBy(products, CanonicalKey)
}

// GroupProductsBy partitions products using key. Each group is named after
// the title of its first product; ids are dropped from the listings.
func GroupProductsBy(products []domain.Product, key KeyFunc) []domain.ProductGroup {
	groups := make([]domain.ProductGroup, 0)
	index := make(map[string]int)

	for _, product := range products {
		k := key(product.Title)

		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, domain.ProductGroup{Category: product.Title})
		}

		groups[i].Products = append(groups[i].Products, domain.ProductListing{
			Title:       product.Title,
			Supermarket: product.Supermarket,
		})
		groups[i].Count++
	}

	return groups
}
