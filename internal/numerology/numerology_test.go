package numerology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	cases := []struct {
		in       int
		expected int
	}{
		{0, 0},
		{5, 5},
		{9, 9},
		{10, 1},
		{29, 11},
		{38, 11},
		{44, 8},
		{2010, 3},
		{11, 11},
		{22, 22},
		{33, 33},
		{1939, 22},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, Reduce(tc.in), "Reduce(%d)", tc.in)
	}
}

func TestLifePathNumber(t *testing.T) {
	// 15 + 5 + 1990 = 2010 -> 3
	n, err := LifePathNumber("1990-05-15")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLifePathNumber_PreservesMasterNumbers(t *testing.T) {
	// 22 + 12 + 1975 = 2009 -> 11, not reduced further
	n, err := LifePathNumber("1975-12-22")
	require.NoError(t, err)
	assert.Equal(t, 11, n)
}

func TestLifePathNumber_RejectsBadDate(t *testing.T) {
	_, err := LifePathNumber("15-05-1990")
	assert.Error(t, err)
	_, err = LifePathNumber("not-a-date")
	assert.Error(t, err)
}

func TestNameNumbers(t *testing.T) {
	// John Smith: all letters sum 44 -> 8, vowels 15 -> 6, consonants 29 -> 11
	assert.Equal(t, 8, ExpressionNumber("John Smith"))
	assert.Equal(t, 6, SoulUrgeNumber("John Smith"))
	assert.Equal(t, 11, PersonalityNumber("John Smith"))
}

func TestNameNumbers_IgnoreNonLetters(t *testing.T) {
	assert.Equal(t, ExpressionNumber("John Smith"), ExpressionNumber("john  smith!"))
	assert.Equal(t, SoulUrgeNumber("John Smith"), SoulUrgeNumber("J-o-h-n S-m-i-t-h"))
}

func TestBirthdayNumber(t *testing.T) {
	n, err := BirthdayNumber("1990-05-29")
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	n, err = BirthdayNumber("1990-05-15")
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestPersonalYear(t *testing.T) {
	// 15 + 5 + 2026 = 2046 -> 12 -> 3
	n, err := PersonalYear("1990-05-15", 2026)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestInterpretations_CoverMasterNumbers(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 22, 33} {
		assert.NotEmpty(t, LifePathInterpretation(n))
		assert.NotEmpty(t, ExpressionInterpretation(n))
	}
}

func TestPersonalYearTheme(t *testing.T) {
	theme, opportunities, challenges := PersonalYearTheme(5)
	assert.Equal(t, "Change and Freedom", theme)
	assert.NotEmpty(t, opportunities)
	assert.NotEmpty(t, challenges)

	// Master numbers reduce to their single-digit theme.
	theme11, _, _ := PersonalYearTheme(11)
	assert.NotEmpty(t, theme11)
}

func TestCompatibility(t *testing.T) {
	score, strengths, challenges := Compatibility(3, 3)
	assert.Equal(t, 10, score)
	assert.Contains(t, strengths, "Aligned life purpose")
	assert.NotEmpty(t, challenges)

	score, _, _ = Compatibility(1, 9)
	assert.Equal(t, 3, score)

	// Symmetric.
	a, _, _ := Compatibility(4, 7)
	b, _, _ := Compatibility(7, 4)
	assert.Equal(t, a, b)
}
