package marketplace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }

func TestBuildGigSearchDefaults(t *testing.T) {
	query, args := buildGigSearch(gigFilters{Limit: 20})

	assert.Contains(t, query, "WHERE g.published")
	assert.Contains(t, query, "ORDER BY COALESCE(rv.avg_rating, 0) DESC")
	assert.Contains(t, query, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{20, 0}, args)
}

func TestBuildGigSearchAllFilters(t *testing.T) {
	query, args := buildGigSearch(gigFilters{
		Category:    "Design",
		Query:       "logo",
		MinPrice:    f64(10),
		MaxPrice:    f64(500),
		MinRating:   f64(4),
		ProOnly:     true,
		MinDelivery: iptr(1),
		MaxDelivery: iptr(7),
		Sort:        "price-asc",
		Limit:       50,
		Offset:      100,
	})

	assert.Contains(t, query, "g.category = $1")
	assert.Contains(t, query, "(g.title ILIKE $2 OR g.description ILIKE $3)")
	assert.Contains(t, query, "COALESCE(cp.price, g.price) >= $4")
	assert.Contains(t, query, "COALESCE(cp.price, g.price) <= $5")
	assert.Contains(t, query, "COALESCE(rv.avg_rating, 0) >= $6")
	assert.Contains(t, query, "u.level = 'Pro'")
	assert.Contains(t, query, "cp.delivery_time >= $7")
	assert.Contains(t, query, "cp.delivery_time <= $8")
	assert.Contains(t, query, "ORDER BY COALESCE(cp.price, g.price) ASC")
	assert.Contains(t, query, "LIMIT $9 OFFSET $10")

	require.Len(t, args, 10)
	assert.Equal(t, "Design", args[0])
	assert.Equal(t, "%logo%", args[1])
	assert.Equal(t, "%logo%", args[2])
	assert.Equal(t, 50, args[8])
	assert.Equal(t, 100, args[9])
}

func TestBuildGigSearchPlaceholdersMatchArgs(t *testing.T) {
	query, args := buildGigSearch(gigFilters{
		Query:    "api",
		MaxPrice: f64(100),
		Limit:    20,
	})

	// Every argument has a matching numbered placeholder.
	for i := 1; i <= len(args); i++ {
		assert.Contains(t, query, "$"+string(rune('0'+i)))
	}
	assert.NotContains(t, query, "?")
}

func TestBuildGigSearchSortVariants(t *testing.T) {
	cases := map[string]string{
		"price-asc":  "ORDER BY COALESCE(cp.price, g.price) ASC",
		"price-desc": "ORDER BY COALESCE(cp.price, g.price) DESC",
		"newest":     "ORDER BY g.created_at DESC",
		"best":       "ORDER BY COALESCE(rv.avg_rating, 0) DESC",
		"":           "ORDER BY COALESCE(rv.avg_rating, 0) DESC",
	}
	for sort, want := range cases {
		query, _ := buildGigSearch(gigFilters{Sort: sort, Limit: 20})
		assert.Contains(t, query, want, "sort=%q", sort)
		assert.Equal(t, 1, strings.Count(query, "ORDER BY"), "sort=%q", sort)
	}
}
