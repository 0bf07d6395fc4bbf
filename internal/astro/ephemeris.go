package astro

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// PlanetaryPosition is one body's placement as reported by the ephemeris source
type PlanetaryPosition struct {
	Longitude  float64 `json:"longitude"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	House      int     `json:"house"`
	Retrograde bool    `json:"retrograde"`
}

// HouseCusp is one house boundary as reported by the ephemeris source
type HouseCusp struct {
	CuspDegree   float64 `json:"cusp_degree"`
	Sign         string  `json:"sign"`
	DegreeInSign float64 `json:"degree_in_sign"`
}

// PositionSource supplies planetary longitudes and house cusps for a birth
// moment. The pipeline only consumes its output; producing astronomically
// correct positions is the provider's concern.
type PositionSource interface {
	PlanetaryPositions(date, timeOfDay string, latitude, longitude float64, timezone string) (map[string]PlanetaryPosition, error)
	Houses(date, timeOfDay string, latitude, longitude float64) (map[int]HouseCusp, error)
}

// StubEphemeris is a deterministic stand-in PositionSource for development
// and tests. Positions are derived from a hash of the birth details, so the
// same input always yields the same chart.
type StubEphemeris struct{}

// NewStubEphemeris creates a deterministic stub position source
func NewStubEphemeris() *StubEphemeris {
	return &StubEphemeris{}
}

// PlanetaryPositions derives each planet's longitude from the input hash
func (s *StubEphemeris) PlanetaryPositions(date, timeOfDay string, latitude, longitude float64, timezone string) (map[string]PlanetaryPosition, error) {
	positions := make(map[string]PlanetaryPosition, len(Planets))

	for _, planet := range Planets {
		h := seed(fmt.Sprintf("%s|%s|%f|%f|%s|%s", date, timeOfDay, latitude, longitude, timezone, planet))
		long := float64(h % 360)
		signIndex := int(long / 30)

		positions[planet] = PlanetaryPosition{
			Longitude:  long,
			Sign:       ZodiacSigns[signIndex],
			Degree:     NormalizeLongitude(long) - float64(signIndex*30),
			House:      int(h/360)%12 + 1,
			Retrograde: planet != "Sun" && planet != "Moon" && h%7 == 0,
		}
	}

	return positions, nil
}

// Houses derives twelve whole-sign cusps from the input hash
func (s *StubEphemeris) Houses(date, timeOfDay string, latitude, longitude float64) (map[int]HouseCusp, error) {
	h := seed(fmt.Sprintf("%s|%s|%f|%f|houses", date, timeOfDay, latitude, longitude))
	startDegree := float64(h % 30)

	houses := make(map[int]HouseCusp, 12)
	for i := 1; i <= 12; i++ {
		degree := NormalizeLongitude(startDegree + float64((i-1)*30))
		signIndex := int(degree / 30)
		houses[i] = HouseCusp{
			CuspDegree:   degree,
			Sign:         ZodiacSigns[signIndex],
			DegreeInSign: degree - float64(signIndex*30),
		}
	}

	return houses, nil
}

func seed(input string) uint64 {
	sum := sha256.Sum256([]byte(input))
	return binary.BigEndian.Uint64(sum[:8])
}
