package marketplace

import (
	"errors"
	"math"
)

var errInvalidPrice = errors.New("price must be a positive finite number")

// computeGigPrice derives a gig's listed price: the minimum package price
// when packages are supplied, the flat price otherwise.
func computeGigPrice(flatPrice float64, packages []PackageInput) (float64, error) {
	if len(packages) == 0 {
		if !validPrice(flatPrice) {
			return 0, errInvalidPrice
		}
		return flatPrice, nil
	}

	min := packages[0].Price
	for _, pkg := range packages[1:] {
		if pkg.Price < min {
			min = pkg.Price
		}
	}
	if !validPrice(min) {
		return 0, errInvalidPrice
	}
	return min, nil
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

var errTotalMismatch = errors.New("total does not match package price")

// validateOrderTotal checks a client-declared order total against the
// stored package price. The total is never trusted: zero means "not
// supplied" and passes, anything else must equal the package price.
func validateOrderTotal(clientTotal, pkgPrice float64) error {
	if clientTotal != 0 && clientTotal != pkgPrice {
		return errTotalMismatch
	}
	return nil
}
