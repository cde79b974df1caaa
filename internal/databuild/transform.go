// Package databuild extracts star systems and jump connections from a
// static SQLite database and writes the compact binary assets the
// viewer fetches at startup.
package databuild

import "regexp"

// MetersPerLightYear is the IAU light-year.
const MetersPerLightYear = 9.4607304725808e15

var placeholderName = regexp.MustCompile(`(?i)^(V-\d{3}|AD\d{3})$`)

// IsPlaceholderName reports whether a system name matches the V-### or
// AD### placeholder patterns, which are filtered out of the viewer
// data set.
func IsPlaceholderName(name string) bool {
	return placeholderName.MatchString(name)
}

// TransformXYZ converts meters to light-years and applies the viewer
// frame rotation Rx(-90 deg): (x, y, z) -> (x, z, -y).
func TransformXYZ(xm, ym, zm float64) (x, y, z float64) {
	xly := xm / MetersPerLightYear
	yly := ym / MetersPerLightYear
	zly := zm / MetersPerLightYear
	return xly, zly, -yly
}
