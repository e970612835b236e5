package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, averageRating(nil))
	assert.Equal(t, 0.0, averageRating([]int{}))
	assert.Equal(t, 5.0, averageRating([]int{5}))
	assert.Equal(t, 4.0, averageRating([]int{3, 5}))
	assert.InDelta(t, 4.333, averageRating([]int{4, 4, 5}), 0.001)
}
