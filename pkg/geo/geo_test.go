package geo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        Coordinate
		b        Coordinate
		expected float64
		delta    float64
	}{
		{
			name:     "identical points",
			a:        Coordinate{Lat: 30.3539, Lng: 76.3683},
			b:        Coordinate{Lat: 30.3539, Lng: 76.3683},
			expected: 0,
			delta:    0,
		},
		{
			name:     "one degree of latitude",
			a:        Coordinate{Lat: 0, Lng: 0},
			b:        Coordinate{Lat: 1, Lng: 0},
			expected: 111194.9,
			delta:    1,
		},
		{
			name:     "one degree of longitude at the equator",
			a:        Coordinate{Lat: 0, Lng: 0},
			b:        Coordinate{Lat: 0, Lng: 1},
			expected: 111194.9,
			delta:    1,
		},
		{
			name:     "short hop",
			a:        Coordinate{Lat: 30.3539, Lng: 76.3683},
			b:        Coordinate{Lat: 30.3544, Lng: 76.3683},
			expected: 55.6,
			delta:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.a, tt.b), tt.delta)
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := []struct{ a, b Coordinate }{
		{Coordinate{Lat: 30.3539, Lng: 76.3683}, Coordinate{Lat: 30.4, Lng: 76.4}},
		{Coordinate{Lat: -33.8688, Lng: 151.2093}, Coordinate{Lat: 51.5074, Lng: -0.1278}},
		{Coordinate{Lat: 89.9, Lng: 179.9}, Coordinate{Lat: -89.9, Lng: -179.9}},
	}

	for _, p := range pairs {
		assert.Equal(t, Distance(p.a, p.b), Distance(p.b, p.a))
	}
}

func TestWithinRadius(t *testing.T) {
	center := Coordinate{Lat: 30.3539, Lng: 76.3683}
	near := Coordinate{Lat: 30.35394, Lng: 76.36834}
	far := Coordinate{Lat: 30.400, Lng: 76.400}

	assert.True(t, WithinRadius(center, near, 50))
	assert.True(t, WithinRadius(center, center, 50))
	assert.False(t, WithinRadius(center, far, 50))
}

func TestEncode(t *testing.T) {
	// Reference hash for the lighthouse at 57.64911, 10.40744.
	c := Coordinate{Lat: 57.64911, Lng: 10.40744}
	assert.Equal(t, "u4pruy", Encode(c, 6))
	assert.Equal(t, "u4pruyd", Encode(c, 7))
}

func TestNeighborInverseMoves(t *testing.T) {
	hash := Encode(Coordinate{Lat: 30.3539, Lng: 76.3683}, BucketPrecision)

	assert.Equal(t, hash, Neighbor(Neighbor(hash, 'n'), 's'))
	assert.Equal(t, hash, Neighbor(Neighbor(hash, 'e'), 'w'))
}

func TestNeighborhood(t *testing.T) {
	cells := Neighborhood(Encode(Coordinate{Lat: 57.64911, Lng: 10.40744}, BucketPrecision))
	require.Len(t, cells, 9)

	seen := make(map[string]struct{}, len(cells))
	for _, c := range cells {
		require.Len(t, c, BucketPrecision)
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 9, "neighborhood cells must be distinct")
}

// Any point within the answer radius of a center must fall inside the
// center's 3x3 bucket neighborhood; otherwise discovery could miss a target
// the engine would accept.
func TestNeighborhoodCoversRadius(t *testing.T) {
	centers := []Coordinate{
		{Lat: 30.3539, Lng: 76.3683},
		{Lat: 30.35, Lng: 76.37},
		{Lat: -0.0004, Lng: 0.0004}, // straddles the equator cell border
		{Lat: 59.95, Lng: 10.75},
	}
	// Roughly 50m steps in the four cardinal directions.
	offsets := []Coordinate{
		{Lat: 0.00045, Lng: 0},
		{Lat: -0.00045, Lng: 0},
		{Lat: 0, Lng: 0.00052},
		{Lat: 0, Lng: -0.00052},
	}

	for _, center := range centers {
		cells := make(map[string]struct{})
		for _, cell := range Neighborhood(Encode(center, BucketPrecision)) {
			cells[cell] = struct{}{}
		}

		for i, off := range offsets {
			point := Coordinate{Lat: center.Lat + off.Lat, Lng: center.Lng + off.Lng}
			require.True(t, WithinRadius(center, point, 60), "offset %d should stay near center", i)

			_, ok := cells[Encode(point, BucketPrecision)]
			assert.True(t, ok, fmt.Sprintf("point %v escaped the neighborhood of %v", point, center))
		}
	}
}
