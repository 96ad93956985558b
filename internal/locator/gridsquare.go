// Package locator converts Maidenhead grid squares to coordinates and
// computes great-circle distance and bearing between them.
package locator

import (
	"fmt"
	"math"
	"strings"
)

const earthRadiusKm = 6371.0

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// IsValid reports whether the string is a well-formed Maidenhead locator
// of 2 to 8 characters (field, square, subsquare, extended square).
func IsValid(locator string) bool {
	_, err := ToPoint(locator)
	return err == nil
}

// ToPoint converts a Maidenhead locator to the coordinate at the center of
// the designated cell.
func ToPoint(locator string) (Point, error) {
	loc := strings.ToUpper(strings.TrimSpace(locator))
	n := len(loc)
	if n < 2 || n > 8 || n%2 != 0 {
		return Point{}, fmt.Errorf("invalid locator length %d", n)
	}

	lon := -180.0
	lat := -90.0
	lonSize := 20.0
	latSize := 10.0

	for i := 0; i < n; i += 2 {
		var lonStep, latStep int
		switch {
		case i%4 == 0: // letter pairs: field (A-R), subsquare (A-X)
			maxLetter := byte('R')
			if i > 0 {
				maxLetter = 'X'
			}
			if loc[i] < 'A' || loc[i] > maxLetter || loc[i+1] < 'A' || loc[i+1] > maxLetter {
				return Point{}, fmt.Errorf("invalid letter pair %q", loc[i:i+2])
			}
			lonStep = int(loc[i] - 'A')
			latStep = int(loc[i+1] - 'A')
			if i == 0 {
				lonSize = 20.0
				latSize = 10.0
			} else {
				lonSize /= 24.0
				latSize /= 24.0
			}
		default: // digit pairs: square, extended square
			if loc[i] < '0' || loc[i] > '9' || loc[i+1] < '0' || loc[i+1] > '9' {
				return Point{}, fmt.Errorf("invalid digit pair %q", loc[i:i+2])
			}
			lonStep = int(loc[i] - '0')
			latStep = int(loc[i+1] - '0')
			lonSize /= 10.0
			latSize /= 10.0
		}
		lon += float64(lonStep) * lonSize
		lat += float64(latStep) * latSize
	}

	// Center of the smallest designated cell.
	lon += lonSize / 2.0
	lat += latSize / 2.0

	return Point{Latitude: lat, Longitude: lon}, nil
}

// FromPoint encodes a coordinate as a Maidenhead locator of the given
// precision (2, 4, 6 or 8 characters).
func FromPoint(p Point, length int) (string, error) {
	if length < 2 || length > 8 || length%2 != 0 {
		return "", fmt.Errorf("invalid locator length %d", length)
	}
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return "", fmt.Errorf("coordinate out of range: %+v", p)
	}

	lon := p.Longitude + 180.0
	lat := p.Latitude + 90.0

	// Clamp the north pole and the antimeridian into the last cell.
	if lon >= 360.0 {
		lon = math.Nextafter(360.0, 0)
	}
	if lat >= 180.0 {
		lat = math.Nextafter(180.0, 0)
	}

	var b strings.Builder
	lonSize := 20.0
	latSize := 10.0

	for i := 0; i < length; i += 2 {
		if i%4 == 0 {
			if i > 0 {
				lonSize /= 24.0
				latSize /= 24.0
			}
			b.WriteByte('A' + byte(lon/lonSize))
			b.WriteByte('A' + byte(lat/latSize))
		} else {
			lonSize /= 10.0
			latSize /= 10.0
			b.WriteByte('0' + byte(lon/lonSize))
			b.WriteByte('0' + byte(lat/latSize))
		}
		lon = math.Mod(lon, lonSize)
		lat = math.Mod(lat, latSize)
	}

	return b.String(), nil
}

// Distance returns the great-circle distance between two points in
// kilometers.
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Bearing returns the initial great-circle bearing from a to b in degrees,
// normalized to [0, 360).
func Bearing(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}
