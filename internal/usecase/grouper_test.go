package usecase

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateleira/backend/internal/domain"
)

func TestGroupProducts(t *testing.T) {
	t.Run("groups the same item across supermarkets", func(t *testing.T) {
		products := []domain.Product{
			{ID: 1, Title: "Arroz Branco Tio João 1kg", Supermarket: "A"},
			{ID: 2, Title: "1kg Arroz Branco Tio João", Supermarket: "B"},
			{ID: 3, Title: "Feijão Preto 500g", Supermarket: "A"},
		}

		groups := GroupProducts(products)

		require.Len(t, groups, 2)
		assert.Equal(t, domain.ProductGroup{
			Category: "Arroz Branco Tio João 1kg",
			Count:    2,
			Products: []domain.ProductListing{
				{Title: "Arroz Branco Tio João 1kg", Supermarket: "A"},
				{Title: "1kg Arroz Branco Tio João", Supermarket: "B"},
			},
		}, groups[0])
		assert.Equal(t, domain.ProductGroup{
			Category: "Feijão Preto 500g",
			Count:    1,
			Products: []domain.ProductListing{
				{Title: "Feijão Preto 500g", Supermarket: "A"},
			},
		}, groups[1])
	})

	t.Run("returns empty non-nil slice for empty input", func(t *testing.T) {
		groups := GroupProducts(nil)
		require.NotNil(t, groups)
		assert.Empty(t, groups)
	})

	t.Run("keeps first-seen key order", func(t *testing.T) {
		products := []domain.Product{
			{ID: 1, Title: "Leite 1L", Supermarket: "A"},
			{ID: 2, Title: "Café 500g", Supermarket: "A"},
			{ID: 3, Title: "Leite 1000ml", Supermarket: "B"},
			{ID: 4, Title: "Açúcar 1kg", Supermarket: "C"},
			{ID: 5, Title: "café 0,5 kg", Supermarket: "C"},
		}

		groups := GroupProducts(products)

		require.Len(t, groups, 3)
		assert.Equal(t, "Leite 1L", groups[0].Category)
		assert.Equal(t, "Café 500g", groups[1].Category)
		assert.Equal(t, "Açúcar 1kg", groups[2].Category)
		assert.Equal(t, []domain.ProductListing{
			{Title: "Café 500g", Supermarket: "A"},
			{Title: "café 0,5 kg", Supermarket: "C"},
		}, groups[1].Products)
	})

	t.Run("every product lands in exactly one group", func(t *testing.T) {
		products := []domain.Product{
			{ID: 10, Title: "Arroz 5kg", Supermarket: "A"},
			{ID: 11, Title: "Arroz 5 kg", Supermarket: "B"},
			{ID: 12, Title: "Arroz 5000 g", Supermarket: "C"},
			{ID: 13, Title: "Macarrão Espaguete 500g", Supermarket: "A"},
			{ID: 14, Title: "", Supermarket: "B"},
			{ID: 15, Title: "Espaguete Macarrão 0,5 kg", Supermarket: "C"},
		}

		groups := GroupProducts(products)

		total := 0
		for _, g := range groups {
			assert.Equal(t, g.Count, len(g.Products))
			total += g.Count
		}
		assert.Equal(t, len(products), total)
		assert.Len(t, groups, 3)
	})

	t.Run("drops ids from listings", func(t *testing.T) {
		groups := GroupProducts([]domain.Product{{ID: 42, Title: "Sal 1kg", Supermarket: "A"}})

		data, err := json.Marshal(groups)
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(data), `"id"`))
		assert.JSONEq(t, `[{"category":"Sal 1kg","count":1,"products":[{"title":"Sal 1kg","supermarket":"A"}]}]`, string(data))
	})
}

func TestGroupProductsBy(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Title: "apple", Supermarket: "A"},
		{ID: 2, Title: "avocado", Supermarket: "B"},
		{ID: 3, Title: "banana", Supermarket: "A"},
	}

	firstLetter := func(title string) string { return title[:1] }

	groups := GroupProductsBy(products, firstLetter)

	require.Len(t, groups, 2)
	assert.Equal(t, "apple", groups[0].Category)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "banana", groups[1].Category)
	assert.Equal(t, 1, groups[1].Count)
}
