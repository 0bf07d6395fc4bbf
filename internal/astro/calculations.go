// Package astro implements the deterministic Vedic calculation routines the
// report pipeline runs against planetary longitudes supplied by an upstream
// ephemeris source: nakshatra/pada lookup and Vimshottari dasha sequencing.
package astro

import (
	"math"
	"time"
)

// NakshatraCalculation is the full nakshatra placement for one longitude
type NakshatraCalculation struct {
	Nakshatra         string  `json:"nakshatra"`
	Index             int     `json:"index"`
	Pada              int     `json:"pada"`
	DegreeInNakshatra float64 `json:"degree_in_nakshatra"`
	DegreeInPada      float64 `json:"degree_in_pada"`
	Lord              string  `json:"lord"`
	Deity             string  `json:"deity"`
	Symbol            string  `json:"symbol"`
	Sign              string  `json:"sign"`
	Nature            string  `json:"nature"`
	Gana              string  `json:"gana"`
	Quality           string  `json:"quality"`
}

// DashaPeriod is one Vimshottari mahadasha period
type DashaPeriod struct {
	Planet        string  `json:"planet"`
	StartDate     string  `json:"start_date"` // YYYY-MM-DD
	EndDate       string  `json:"end_date"`   // YYYY-MM-DD
	DurationYears float64 `json:"duration_years"`
	IsBalance     bool    `json:"is_balance"`
}

// NormalizeLongitude wraps a longitude into [0,360)
func NormalizeLongitude(longitude float64) float64 {
	norm := math.Mod(longitude, 360)
	if norm < 0 {
		norm += 360
	}
	return norm
}

// NakshatraAt computes the nakshatra placement for a planetary longitude.
// Out-of-range longitudes are normalized before lookup.
func NakshatraAt(longitude float64) NakshatraCalculation {
	norm := NormalizeLongitude(longitude)

	index := int(norm / NakshatraSpan)
	if index > 26 {
		// Guards the 360.0 edge after float rounding.
		index = 26
	}
	degreeInNakshatra := math.Mod(norm, NakshatraSpan)
	pada := int(degreeInNakshatra/PadaSpan) + 1
	if pada > 4 {
		pada = 4
	}
	degreeInPada := math.Mod(degreeInNakshatra, PadaSpan)

	details := Nakshatras[index]

	return NakshatraCalculation{
		Nakshatra:         details.Name,
		Index:             index,
		Pada:              pada,
		DegreeInNakshatra: round4(degreeInNakshatra),
		DegreeInPada:      round4(degreeInPada),
		Lord:              details.Lord,
		Deity:             details.Deity,
		Symbol:            details.Symbol,
		Sign:              details.Sign,
		Nature:            details.Nature,
		Gana:              details.Gana,
		Quality:           details.Quality,
	}
}

// AllNakshatras computes the nakshatra placement for every planet position
func AllNakshatras(positions map[string]PlanetaryPosition) map[string]NakshatraCalculation {
	all := make(map[string]NakshatraCalculation, len(positions))
	for planet, pos := range positions {
		all[planet] = NakshatraAt(pos.Longitude)
	}
	return all
}

// VimshottariDasha computes the 9 mahadasha periods anchored to the birth
// nakshatra. The first ("balance") period runs for period(lord)*(1-f) years
// from the birth date, where f is the degree-completion fraction within the
// nakshatra; the remaining 8 follow the fixed cyclic order after the birth
// lord, each for its full length, back-to-back.
func VimshottariDasha(birthDate time.Time, nak NakshatraCalculation) []DashaPeriod {
	startIndex := 0
	for i, lord := range DashaSequence {
		if lord == nak.Lord {
			startIndex = i
			break
		}
	}

	fractionCompleted := nak.DegreeInNakshatra / NakshatraSpan
	balanceYears := DashaPeriodYears[nak.Lord] * (1 - fractionCompleted)

	dashas := make([]DashaPeriod, 0, 9)

	current := birthDate
	end := current.AddDate(0, 0, int(math.Floor(balanceYears*365.25)))
	dashas = append(dashas, DashaPeriod{
		Planet:        nak.Lord,
		StartDate:     current.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		DurationYears: round2(balanceYears),
		IsBalance:     true,
	})

	next := end
	for i := 1; i < len(DashaSequence); i++ {
		lord := DashaSequence[(startIndex+i)%len(DashaSequence)]
		years := DashaPeriodYears[lord]
		periodEnd := next.AddDate(0, 0, int(math.Floor(years*365.25)))

		dashas = append(dashas, DashaPeriod{
			Planet:        lord,
			StartDate:     next.Format("2006-01-02"),
			EndDate:       periodEnd.Format("2006-01-02"),
			DurationYears: years,
			IsBalance:     false,
		})
		next = periodEnd
	}

	return dashas
}

// Lagna returns the ascendant sign, i.e. the first house's sign
func Lagna(houses map[int]HouseCusp) string {
	return houses[1].Sign
}

// MoonSign returns the Rashi (Moon's zodiac sign)
func MoonSign(positions map[string]PlanetaryPosition) string {
	return positions["Moon"].Sign
}

// SunSign returns the Sun's zodiac sign
func SunSign(positions map[string]PlanetaryPosition) string {
	return positions["Sun"].Sign
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
