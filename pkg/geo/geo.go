package geo

import (
	"math"
	"strings"
)

// earthRadiusM is the mean earth radius used for great-circle distance.
const earthRadiusM = 6371000.0

// Coordinate is a WGS 84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the haversine (great-circle) distance between a and b in
// meters. It is symmetric and zero for identical coordinates. Coordinates are
// compared at full precision; callers must not round or truncate before
// calling.
func Distance(a, b Coordinate) float64 {
	if a == b {
		return 0
	}

	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng

	return 2 * earthRadiusM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// WithinRadius reports whether a and b are at most radiusM meters apart.
func WithinRadius(a, b Coordinate, radiusM float64) bool {
	return Distance(a, b) <= radiusM
}

// Geohash encoding. Questions are bucketed by geohash cell so discovery can
// scan a 3x3 neighborhood instead of the whole index; the precise haversine
// filter still runs on every candidate, so cell boundaries never produce
// false negatives.

// BucketPrecision is the geohash length used for index buckets. At precision
// 6 a cell is roughly 1.2km x 0.6km, so a 3x3 grid safely covers any answer
// radius up to about 600m.
const BucketPrecision = 6

const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// index 0 is used for even-length hashes, index 1 for odd-length.
var (
	neighborTable = map[byte][2]string{
		'n': {"p0r21436x8zb9dcf5h7kjnmqesgutwvy", "bc01fg45238967deuvhjyznpkmstqrwx"},
		's': {"14365h7k9dcfesgujnmqp0r2twvyx8zb", "238967debc01fg45kmstqrwxuvhjyznp"},
		'e': {"bc01fg45238967deuvhjyznpkmstqrwx", "p0r21436x8zb9dcf5h7kjnmqesgutwvy"},
		'w': {"238967debc01fg45kmstqrwxuvhjyznp", "14365h7k9dcfesgujnmqp0r2twvyx8zb"},
	}
	borderTable = map[byte][2]string{
		'n': {"prxz", "bcfguvyz"},
		's': {"028b", "0145hjnp"},
		'e': {"bcfguvyz", "prxz"},
		'w': {"0145hjnp", "028b"},
	}
)

// Encode returns the geohash of the coordinate at the given precision.
func Encode(c Coordinate, precision int) string {
	if precision <= 0 {
		precision = BucketPrecision
	}
	if precision > 12 {
		precision = 12
	}

	minLat, maxLat := -90.0, 90.0
	minLng, maxLng := -180.0, 180.0

	var hash strings.Builder
	evenBit := true
	bit := 0
	ch := 0

	for hash.Len() < precision {
		if evenBit {
			mid := (minLng + maxLng) / 2
			if c.Lng >= mid {
				ch |= 1 << (4 - bit)
				minLng = mid
			} else {
				maxLng = mid
			}
		} else {
			mid := (minLat + maxLat) / 2
			if c.Lat >= mid {
				ch |= 1 << (4 - bit)
				minLat = mid
			} else {
				maxLat = mid
			}
		}
		evenBit = !evenBit
		bit++
		if bit == 5 {
			hash.WriteByte(base32[ch])
			bit = 0
			ch = 0
		}
	}

	return hash.String()
}

// Neighbor returns the geohash of the adjacent cell in direction 'n', 's',
// 'e' or 'w'. When the cell sits on the border of its parent cell the parent
// is shifted first.
func Neighbor(hash string, direction byte) string {
	if hash == "" {
		return ""
	}

	last := hash[len(hash)-1]
	parent := hash[:len(hash)-1]
	parity := len(hash) % 2 // 0 = even length, 1 = odd length

	if strings.IndexByte(borderTable[direction][parity], last) != -1 && parent != "" {
		parent = Neighbor(parent, direction)
	}

	idx := strings.IndexByte(neighborTable[direction][parity], last)
	if idx < 0 {
		return hash
	}
	return parent + string(base32[idx])
}

// Neighborhood returns the cell itself plus its eight surrounding cells.
// Diagonals are reached by chaining two Neighbor moves.
func Neighborhood(hash string) []string {
	n := Neighbor(hash, 'n')
	s := Neighbor(hash, 's')
	return []string{
		hash,
		n,
		s,
		Neighbor(hash, 'e'),
		Neighbor(hash, 'w'),
		Neighbor(n, 'e'),
		Neighbor(n, 'w'),
		Neighbor(s, 'e'),
		Neighbor(s, 'w'),
	}
}
