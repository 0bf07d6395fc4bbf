// Package numerology implements the deterministic core-number calculations
// for numerology reports: life path, expression, soul urge, personality and
// birthday numbers, with master numbers (11, 22, 33) preserved unreduced.
package numerology

import (
	"fmt"
	"strings"
	"time"
)

// letterValues maps letters to their Pythagorean digit values
var letterValues = map[rune]int{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8, 'I': 9,
	'J': 1, 'K': 2, 'L': 3, 'M': 4, 'N': 5, 'O': 6, 'P': 7, 'Q': 8, 'R': 9,
	'S': 1, 'T': 2, 'U': 3, 'V': 4, 'W': 5, 'X': 6, 'Y': 7, 'Z': 8,
}

var vowels = map[rune]bool{'A': true, 'E': true, 'I': true, 'O': true, 'U': true}

// Reduce collapses a number to a single digit, preserving master numbers
func Reduce(n int) int {
	for n > 9 && n != 11 && n != 22 && n != 33 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}

// LifePathNumber computes the life path number from a YYYY-MM-DD birth date.
// The day, month and year are summed as whole numbers, then reduced.
func LifePathNumber(dateOfBirth string) (int, error) {
	date, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("invalid date of birth %q: %w", dateOfBirth, err)
	}
	return Reduce(date.Day() + int(date.Month()) + date.Year()), nil
}

// ExpressionNumber computes the expression (destiny) number from a full name
func ExpressionNumber(name string) int {
	return Reduce(sumLetters(name, func(rune) bool { return true }))
}

// SoulUrgeNumber computes the soul urge number from the vowels of a name
func SoulUrgeNumber(name string) int {
	return Reduce(sumLetters(name, func(r rune) bool { return vowels[r] }))
}

// PersonalityNumber computes the personality number from the consonants of a name
func PersonalityNumber(name string) int {
	return Reduce(sumLetters(name, func(r rune) bool { return !vowels[r] }))
}

// BirthdayNumber computes the birthday number from the day of the month
func BirthdayNumber(dateOfBirth string) (int, error) {
	date, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("invalid date of birth %q: %w", dateOfBirth, err)
	}
	return Reduce(date.Day()), nil
}

// PersonalYear computes the personal year number for the given calendar year
func PersonalYear(dateOfBirth string, year int) (int, error) {
	date, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("invalid date of birth %q: %w", dateOfBirth, err)
	}
	return Reduce(date.Day() + int(date.Month()) + year), nil
}

func sumLetters(name string, include func(rune) bool) int {
	sum := 0
	for _, r := range strings.ToUpper(name) {
		if v, ok := letterValues[r]; ok && include(r) {
			sum += v
		}
	}
	return sum
}

// LifePathInterpretation returns the reading for a life path number
func LifePathInterpretation(number int) string {
	interpretations := map[int]string{
		1:  "Natural leader with strong independence and ambition",
		2:  "Diplomatic peacemaker with strong intuition",
		3:  "Creative communicator with artistic talents",
		4:  "Practical builder with strong work ethic",
		5:  "Freedom-loving adventurer seeking variety",
		6:  "Nurturing caretaker with strong sense of responsibility",
		7:  "Spiritual seeker with analytical mind",
		8:  "Ambitious achiever focused on material success",
		9:  "Humanitarian with compassion for all",
		11: "Spiritual messenger with heightened intuition",
		22: "Master builder capable of great achievements",
		33: "Master teacher with healing abilities",
	}
	if text, ok := interpretations[number]; ok {
		return text
	}
	return "Unique path requiring self-discovery"
}

// ExpressionInterpretation returns the reading for an expression number
func ExpressionInterpretation(number int) string {
	interpretations := map[int]string{
		1:  "Natural leadership abilities and pioneering spirit",
		2:  "Diplomatic skills and ability to work with others",
		3:  "Creative expression and communication talents",
		4:  "Organizational skills and practical abilities",
		5:  "Versatility and adaptability in various situations",
		6:  "Nurturing abilities and sense of responsibility",
		7:  "Analytical mind and spiritual awareness",
		8:  "Business acumen and material success potential",
		9:  "Humanitarian ideals and universal compassion",
		11: "Inspirational abilities and spiritual insights",
		22: "Ability to manifest grand visions into reality",
		33: "Teaching and healing abilities for humanity",
	}
	if text, ok := interpretations[number]; ok {
		return text
	}
	return "Unique talents requiring development"
}

// PersonalYearTheme returns the theme and typical opportunities/challenges
// for a personal year number
func PersonalYearTheme(number int) (theme string, opportunities, challenges []string) {
	themes := map[int]struct {
		theme         string
		opportunities []string
		challenges    []string
	}{
		1: {"New Beginnings", []string{"Fresh starts", "Leadership roles", "Independence"}, []string{"Impatience", "Going it alone"}},
		2: {"Cooperation and Patience", []string{"Partnerships", "Diplomacy", "Quiet growth"}, []string{"Oversensitivity", "Indecision"}},
		3: {"Creativity and Expression", []string{"Artistic projects", "Social connections", "Communication"}, []string{"Scattered focus", "Superficiality"}},
		4: {"Building Foundations", []string{"Steady work", "Organization", "Long-term planning"}, []string{"Rigidity", "Overwork"}},
		5: {"Change and Freedom", []string{"Travel", "New experiences", "Personal growth"}, []string{"Restlessness", "Scattered energy"}},
		6: {"Responsibility and Home", []string{"Family matters", "Service", "Harmony"}, []string{"Over-commitment", "Perfectionism"}},
		7: {"Reflection and Study", []string{"Inner work", "Learning", "Spiritual growth"}, []string{"Isolation", "Overthinking"}},
		8: {"Achievement and Power", []string{"Career advancement", "Financial gains", "Recognition"}, []string{"Materialism", "Power struggles"}},
		9: {"Completion and Release", []string{"Closure", "Humanitarian work", "Letting go"}, []string{"Holding on", "Emotional endings"}},
	}
	if t, ok := themes[Reduce(number)]; ok {
		return t.theme, t.opportunities, t.challenges
	}
	return "Transition", []string{"Self-discovery"}, []string{"Uncertainty"}
}

// Compatibility scores two life path numbers on a 1-10 scale. Equal reduced
// numbers score highest; the score falls off with their distance.
func Compatibility(lifePath, partnerLifePath int) (score int, strengths, challenges []string) {
	a, b := Reduce(lifePath), Reduce(partnerLifePath)
	diff := a - b
	if diff < 0 {
		diff = -diff
	}

	score = 10 - diff
	if score < 3 {
		score = 3
	}

	strengths = []string{"Mutual understanding", "Shared values"}
	challenges = []string{"Different communication styles"}
	if a == b {
		strengths = append(strengths, "Aligned life purpose")
	}
	return score, strengths, challenges
}
