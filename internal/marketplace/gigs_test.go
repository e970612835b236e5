package marketplace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGigRequestDistinguishesOmittedPackages(t *testing.T) {
	// No packages field at all: nil pointer, the current tiers survive an
	// update untouched.
	var omitted gigRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Logo design"}`), &omitted))
	assert.Nil(t, omitted.Packages)
	assert.Empty(t, omitted.packageInputs())

	// An explicit empty array: non-nil pointer, the whole tier set is
	// replaced with nothing.
	var cleared gigRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Logo design","packages":[]}`), &cleared))
	require.NotNil(t, cleared.Packages)
	assert.Empty(t, *cleared.Packages)

	var replaced gigRequest
	require.NoError(t, json.Unmarshal([]byte(`{"packages":[{"name":"Basic","price":50}]}`), &replaced))
	require.NotNil(t, replaced.Packages)
	require.Len(t, *replaced.Packages, 1)
	assert.Equal(t, "Basic", (*replaced.Packages)[0].Name)
	assert.Equal(t, []PackageInput{{Name: "Basic", Price: 50}}, replaced.packageInputs())
}

func TestClearedPackagesNeedFlatPrice(t *testing.T) {
	// Deleting every tier leaves the flat price as the only source; with
	// neither, the update is rejected before any write.
	_, err := computeGigPrice(0, []PackageInput{})
	assert.ErrorIs(t, err, errInvalidPrice)

	price, err := computeGigPrice(80, []PackageInput{})
	require.NoError(t, err)
	assert.Equal(t, 80.0, price)
}
