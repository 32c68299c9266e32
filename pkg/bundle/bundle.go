// Package bundle generates bundle suggestions from a set of selected
// products: every subset of size >= 2, with concatenated SKUs and aggregated
// prices and shipping dimensions.
package bundle

import (
	"strconv"
	"strings"

	"sellerdesk/pkg/models"
)

// Combination is one candidate bundle built from a subset of the input
// products. It is derived in memory and never persisted.
type Combination struct {
	GroupSKU           string   `json:"group_sku"`
	Title              string   `json:"title"`
	SubSKUs            []string `json:"sub_skus"`
	BrandRealPrice     string   `json:"brand_real_price"`
	BrandMiscellaneous string   `json:"brand_miscellaneous"`
	MSRP               string   `json:"msrp"`
	ShippingPrice      string   `json:"shipping_price"`
	Length             string   `json:"length"`
	Width              string   `json:"width"`
	Height             string   `json:"height"`
	Volume             string   `json:"volume"`
	Weight             string   `json:"weight"`
	ProductCount       int      `json:"product_count"`
}

// Generate returns every combination of size >= 2 of the given products, in
// increasing subset size and backtracking order over the input indices. For
// fewer than two products it returns an empty slice. The result count is
// 2^N - N - 1, so callers are expected to bound N before calling.
func Generate(products []models.Product) []Combination {
	n := len(products)
	if n < 2 {
		return []Combination{}
	}

	combos := make([]Combination, 0, (1<<uint(n))-n-1)
	idx := make([]int, 0, n)
	var walk func(start, size int)
	walk = func(start, size int) {
		if len(idx) == size {
			combos = append(combos, build(products, idx))
			return
		}
		for i := start; i < n; i++ {
			idx = append(idx, i)
			walk(i+1, size)
			idx = idx[:len(idx)-1]
		}
	}
	for size := 2; size <= n; size++ {
		walk(0, size)
	}
	return combos
}

func build(products []models.Product, idx []int) Combination {
	c := Combination{ProductCount: len(idx)}

	var skus, titles []string
	var brandReal, brandMisc, msrp, shipping float64
	var length, width, height, volume, weight float64
	for pos, i := range idx {
		p := products[i]
		if p.GroupSKU != "" {
			skus = append(skus, p.GroupSKU)
		}
		titles = append(titles, p.Title)
		for _, s := range strings.Split(p.SubSKU, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.SubSKUs = append(c.SubSKUs, s)
			}
		}

		brandReal += num(p.BrandRealPrice)
		brandMisc += num(p.BrandMiscellaneous)
		msrp += num(p.MSRP)
		shipping += num(p.ShippingPrice)

		// Stacked shipping profile: footprint is the largest member,
		// height/volume/weight accumulate.
		l, w := num(p.Length), num(p.Width)
		if pos == 0 || l > length {
			length = l
		}
		if pos == 0 || w > width {
			width = w
		}
		height += num(p.Height)
		volume += num(p.Volume)
		weight += num(p.Weight)
	}

	c.GroupSKU = strings.Join(skus, "-")
	c.Title = strings.Join(titles, " + ")
	c.BrandRealPrice = dec(brandReal)
	c.BrandMiscellaneous = dec(brandMisc)
	c.MSRP = dec(msrp)
	c.ShippingPrice = dec(shipping)
	c.Length = dec(length)
	c.Width = dec(width)
	c.Height = dec(height)
	c.Volume = dec(volume)
	c.Weight = dec(weight)
	return c
}

// num parses a decimal string, treating anything non-numeric as 0.
func num(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func dec(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
