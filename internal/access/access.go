// Package access implements the empirical travel-probability decay curves.
//
// Both curves are piecewise exponentials fitted to observed visit behavior:
// a short-range branch below 5 km and a long-range branch above. The
// constants are the fitted values and must not be rounded.
package access

import (
	"math"

	"github.com/sells-group/facloc-cli/internal/model"
)

const branchKM = 5.0

// Urban is the access probability for a user in an urban region at the
// given geodesic distance in kilometers.
func Urban(distKM float64) float64 {
	if distKM < branchKM {
		return math.Exp(-0.2550891696011455 * math.Pow(distKM, 0.8674531576586394))
	}
	return 4.639450774188538 * math.Exp(-1.4989521421856289*math.Pow(distKM, 0.3288777336829004))
}

// Rural is the access probability for a user in a rural region at the
// given geodesic distance in kilometers.
func Rural(distKM float64) float64 {
	if distKM < branchKM {
		return math.Exp(-0.24990116894290326 * math.Pow(distKM, 0.8201058149904008))
	}
	return 1.6114912595353221 * math.Exp(-0.6887217475464711*math.Pow(distKM, 0.43652329253292316))
}

// Probability selects the curve for the given region type. Unknown region
// types are an error rather than a silent default.
func Probability(distKM float64, region model.RegionType) (float64, error) {
	switch region {
	case model.RegionUrban:
		return Urban(distKM), nil
	case model.RegionRural:
		return Rural(distKM), nil
	default:
		_, err := model.ParseRegionType(string(region))
		return 0, err
	}
}
