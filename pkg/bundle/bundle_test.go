package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerdesk/pkg/models"
)

func product(title, groupSKU, subSKU, price string) models.Product {
	return models.Product{
		Title:          title,
		GroupSKU:       groupSKU,
		SubSKU:         subSKU,
		BrandRealPrice: price,
	}
}

func TestGenerateTooFewProducts(t *testing.T) {
	assert.Empty(t, Generate(nil))
	assert.Empty(t, Generate([]models.Product{product("A", "SKU-A", "", "10")}))
}

func TestGenerateCount(t *testing.T) {
	for n := 2; n <= 8; n++ {
		products := make([]models.Product, n)
		for i := range products {
			products[i] = product("P", "S", "", "1")
		}
		want := (1 << uint(n)) - n - 1
		assert.Len(t, Generate(products), want, "n=%d", n)
	}
}

func TestGenerateThreeProducts(t *testing.T) {
	products := []models.Product{
		product("Alpha", "SKU-A", "A1,A2", "10.50"),
		product("Beta", "SKU-B", "B1", "5"),
		product("Gamma", "SKU-C", "", "not-a-price"),
	}

	combos := Generate(products)
	require.Len(t, combos, 4)

	// Increasing size, backtracking order: {A,B},{A,C},{B,C},{A,B,C}
	assert.Equal(t, "SKU-A-SKU-B", combos[0].GroupSKU)
	assert.Equal(t, "SKU-A-SKU-C", combos[1].GroupSKU)
	assert.Equal(t, "SKU-B-SKU-C", combos[2].GroupSKU)
	assert.Equal(t, "SKU-A-SKU-B-SKU-C", combos[3].GroupSKU)

	assert.Equal(t, "Alpha + Beta", combos[0].Title)
	assert.Equal(t, "Alpha + Beta + Gamma", combos[3].Title)

	assert.Equal(t, []string{"A1", "A2", "B1"}, combos[0].SubSKUs)
	assert.Equal(t, []string{"A1", "A2", "B1"}, combos[3].SubSKUs)

	assert.Equal(t, 2, combos[0].ProductCount)
	assert.Equal(t, 3, combos[3].ProductCount)

	// Non-numeric price counts as 0
	assert.Equal(t, "15.5", combos[0].BrandRealPrice)
	assert.Equal(t, "10.5", combos[1].BrandRealPrice)
	assert.Equal(t, "5", combos[2].BrandRealPrice)
	assert.Equal(t, "15.5", combos[3].BrandRealPrice)
}

func TestGenerateSkipsEmptyGroupSKUs(t *testing.T) {
	products := []models.Product{
		product("Alpha", "SKU-A", "", "0"),
		product("Beta", "", "", "0"),
	}

	combos := Generate(products)
	require.Len(t, combos, 1)
	assert.Equal(t, "SKU-A", combos[0].GroupSKU)
}

func TestGenerateDimensions(t *testing.T) {
	a := product("Alpha", "SKU-A", "", "0")
	a.Length, a.Width, a.Height, a.Volume, a.Weight = "30", "10", "5", "1500", "200"
	b := product("Beta", "SKU-B", "", "0")
	b.Length, b.Width, b.Height, b.Volume, b.Weight = "20", "15", "8", "2400", "350"

	combos := Generate([]models.Product{a, b})
	require.Len(t, combos, 1)

	// Footprint takes the max, the rest accumulate
	assert.Equal(t, "30", combos[0].Length)
	assert.Equal(t, "15", combos[0].Width)
	assert.Equal(t, "13", combos[0].Height)
	assert.Equal(t, "3900", combos[0].Volume)
	assert.Equal(t, "550", combos[0].Weight)
}

func TestGenerateIdempotent(t *testing.T) {
	products := []models.Product{
		product("Alpha", "SKU-A", "A1", "10"),
		product("Beta", "SKU-B", "B1,B2", "20"),
		product("Gamma", "SKU-C", "", "30"),
	}

	first := Generate(products)
	second := Generate(products)
	assert.Equal(t, first, second)
}
