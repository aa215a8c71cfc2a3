package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFromOption(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Product
	}{
		{"trailing paren wildfit", "Mi alimentación desde la raíz (WildFit)", ProductWildfit},
		{"trailing paren two words", "Paz con la comida (Food Freedom)", ProductFoodFreedom},
		{"trailing paren joined", "Algo (foodfreedom)", ProductFoodFreedom},
		{"trailing paren radiant", "Despertar con vitalidad (Radiant Health)", ProductRadiant},
		{"spanish radiante", "Salud radiante y plena", ProductRadiant},
		{"coaching", "Sesiones uno a uno (Coaching)", ProductCoaching},
		{"hint outside parens", "WildFit es mi camino", ProductWildfit},
		{"inner parens ignored, trailing wins", "Comer (bien) sin esfuerzo (WildFit)", ProductWildfit},
		{"no hint defaults", "Ninguna de las anteriores", ProductCoaching},
		{"empty defaults", "", ProductCoaching},
		{"unknown paren defaults", "Otra cosa (Pilates)", ProductCoaching},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProductFromOption(tc.text)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.IsKnown(), "mapping must be total over known products")
		})
	}
}

func TestCalculateWinningProduct(t *testing.T) {
	cases := []struct {
		name   string
		scores map[Product]int
		want   Product
	}{
		{"strict max wins", map[Product]int{ProductWildfit: 3, ProductCoaching: 1}, ProductWildfit},
		{"two-way tie defaults", map[Product]int{ProductWildfit: 2, ProductRadiant: 2}, ProductCoaching},
		{"four-way tie defaults", map[Product]int{
			ProductCoaching: 1, ProductWildfit: 1, ProductFoodFreedom: 1, ProductRadiant: 1,
		}, ProductCoaching},
		{"all zero defaults", map[Product]int{}, ProductCoaching},
		{"single vote wins", map[Product]int{ProductFoodFreedom: 1}, ProductFoodFreedom},
		{"tie not involving winner is fine", map[Product]int{
			ProductRadiant: 3, ProductWildfit: 1, ProductCoaching: 1,
		}, ProductRadiant},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateWinningProduct(tc.scores))
		})
	}
}

func TestProductImage(t *testing.T) {
	for _, p := range Products {
		assert.NotEmpty(t, p.Image(), "product %s has no image", p)
	}
	assert.Empty(t, Product("pilates").Image())
	assert.False(t, Product("pilates").IsKnown())
}
