package marketplace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGigPriceUsesCheapestPackage(t *testing.T) {
	price, err := computeGigPrice(0, []PackageInput{
		{Name: "Basic", Price: 50},
		{Name: "Standard", Price: 120},
		{Name: "Premium", Price: 300},
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, price)
}

func TestComputeGigPriceFallsBackToFlatPrice(t *testing.T) {
	price, err := computeGigPrice(75, nil)
	require.NoError(t, err)
	assert.Equal(t, 75.0, price)
}

func TestComputeGigPriceRejectsInvalid(t *testing.T) {
	cases := []struct {
		name     string
		flat     float64
		packages []PackageInput
	}{
		{"no price at all", 0, nil},
		{"negative flat price", -10, nil},
		{"zero package price", 0, []PackageInput{{Name: "Basic", Price: 0}}},
		{"negative package price", 0, []PackageInput{{Name: "Basic", Price: -5}}},
		{"infinite flat price", math.Inf(1), nil},
		{"NaN flat price", math.NaN(), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := computeGigPrice(tc.flat, tc.packages)
			assert.ErrorIs(t, err, errInvalidPrice)
		})
	}
}

func TestComputeGigPricePackagesOverrideFlat(t *testing.T) {
	// A flat price may coexist with packages; the cheapest package wins.
	price, err := computeGigPrice(10, []PackageInput{{Name: "Basic", Price: 99}})
	require.NoError(t, err)
	assert.Equal(t, 99.0, price)
}

func TestValidateOrderTotal(t *testing.T) {
	// Zero means the client did not supply a total; the server derives it.
	assert.NoError(t, validateOrderTotal(0, 25))

	// A supplied total must match the stored package price exactly.
	assert.NoError(t, validateOrderTotal(25, 25))
	assert.ErrorIs(t, validateOrderTotal(24, 25), errTotalMismatch)
	assert.ErrorIs(t, validateOrderTotal(26, 25), errTotalMismatch)
	assert.ErrorIs(t, validateOrderTotal(-25, 25), errTotalMismatch)
}

func TestValidPrice(t *testing.T) {
	assert.True(t, validPrice(0.01))
	assert.True(t, validPrice(100))
	assert.False(t, validPrice(0))
	assert.False(t, validPrice(-1))
	assert.False(t, validPrice(math.Inf(1)))
	assert.False(t, validPrice(math.NaN()))
}
