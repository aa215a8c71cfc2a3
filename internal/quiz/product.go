package quiz

import (
	"regexp"
	"strings"
)

// Product identifies one of the four fixed service offerings.
type Product string

const (
	ProductCoaching    Product = "coaching"
	ProductWildfit     Product = "wildfit"
	ProductFoodFreedom Product = "foodfreedom"
	ProductRadiant     Product = "radiant"
)

// Products lists every offering in catalog order.
var Products = []Product{ProductCoaching, ProductWildfit, ProductFoodFreedom, ProductRadiant}

// productImages maps each offering to its display image under the public assets dir.
var productImages = map[Product]string{
	ProductCoaching:    "/assets/img/products/coaching.webp",
	ProductWildfit:     "/assets/img/products/wildfit.webp",
	ProductFoodFreedom: "/assets/img/products/foodfreedom.webp",
	ProductRadiant:     "/assets/img/products/radiant.webp",
}

// Image returns the display image path for p.
func (p Product) Image() string { return productImages[p] }

// IsKnown reports whether p belongs to the fixed offering set.
func (p Product) IsKnown() bool {
	_, ok := productImages[p]
	return ok
}

var trailingParen = regexp.MustCompile(`\(([^()]*)\)\s*$`)

// productHints maps lowercase name fragments found in option text to offerings.
// Order matters: more specific names are checked before "coaching".
var productHints = []struct {
	fragment string
	product  Product
}{
	{"wildfit", ProductWildfit},
	{"food freedom", ProductFoodFreedom},
	{"foodfreedom", ProductFoodFreedom},
	{"radiant", ProductRadiant},
	{"radiante", ProductRadiant},
	{"coaching", ProductCoaching},
}

// ProductFromOption extracts the offering named in the trailing parenthetical
// of a quiz option. The mapping is total: any input yields exactly one known
// product, defaulting to coaching when nothing matches.
func ProductFromOption(text string) Product {
	hint := text
	if m := trailingParen.FindStringSubmatch(text); m != nil {
		hint = m[1]
	}
	hint = strings.ToLower(hint)
	for _, h := range productHints {
		if strings.Contains(hint, h.fragment) {
			return h.product
		}
	}
	return ProductCoaching
}

// CalculateWinningProduct picks the unique strict maximum of the score vector.
// Ties and all-zero vectors resolve to coaching; that is the documented
// default, not an arbitrary pick.
func CalculateWinningProduct(scores map[Product]int) Product {
	maxScore := 0
	for _, p := range Products {
		if scores[p] > maxScore {
			maxScore = scores[p]
		}
	}
	if maxScore == 0 {
		return ProductCoaching
	}
	var winner Product
	count := 0
	for _, p := range Products {
		if scores[p] == maxScore {
			winner = p
			count++
		}
	}
	if count > 1 {
		return ProductCoaching
	}
	return winner
}
