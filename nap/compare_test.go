package nap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"pizza", "pizza", 0},
		{"café", "cafe", 1}, // rune-wise, not byte-wise
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevenshteinDistance(tt.a, tt.b), "distance(%q, %q)", tt.a, tt.b)
	}
}

func TestLevenshteinDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"joe's pizza", "joes pizza"},
		{"123 main st", "123 main street"},
		{"", "anything"},
		{"tony's pizzeria", "joe's pizza"},
	}

	for _, p := range pairs {
		assert.Equal(t, LevenshteinDistance(p[0], p[1]), LevenshteinDistance(p[1], p[0]),
			"distance should be symmetric for %q / %q", p[0], p[1])
	}
}

func TestLevenshteinDistanceIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "joe's pizza restaurant", "555-123-4567"} {
		assert.Zero(t, LevenshteinDistance(s, s))
	}
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"", "completely different"},
		{"abc", "xyz"},
		{"same", "same"},
		{"almost the same", "almost the sam"},
	}

	for _, p := range pairs {
		sim := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, sim, 0)
		assert.LessOrEqual(t, sim, 100)
	}

	assert.Equal(t, 100, Similarity("", ""), "two empty strings are identical")
}

// expectedSimilarity recomputes the documented similarity formula so tests
// assert against the formula rather than hand-picked literals.
func expectedSimilarity(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 100
	}
	return int(math.Round(float64(maxLen-LevenshteinDistance(a, b)) / float64(maxLen) * 100))
}

func TestCompareNamesIdenticalIsPerfect(t *testing.T) {
	result := CompareNames("Joe's Pizza Restaurant", "Joe's Pizza Restaurant", 0)

	assert.True(t, result.Match)
	assert.Equal(t, 100, result.Similarity)
	assert.Equal(t, StatusPerfect, result.Status)
	assert.Equal(t, ColorGreen, result.Color)
}

func TestCompareNamesMinorDifference(t *testing.T) {
	a, b := "Joe's Pizza Restaurant", "Joes Pizza Restaurant"
	result := CompareNames(a, b, 0)

	want := expectedSimilarity(NormalizeName(a), NormalizeName(b))
	assert.Equal(t, want, result.Similarity)
	assert.True(t, result.Match, "one dropped apostrophe should still match")

	// Status must agree with the fixed bands for whatever the formula yields
	switch {
	case want >= PerfectThreshold:
		assert.Equal(t, StatusPerfect, result.Status)
		assert.Equal(t, ColorGreen, result.Color)
	case want >= SimilarThreshold:
		assert.Equal(t, StatusSimilar, result.Status)
		assert.Equal(t, ColorYellow, result.Color)
	default:
		t.Fatalf("unexpectedly low similarity %d for near-identical names", want)
	}
}

func TestCompareNamesThresholdOnlyMovesMatch(t *testing.T) {
	a, b := "Joe's Pizza", "Joseph's Pizza House"

	loose := CompareNames(a, b, 10)
	strict := CompareNames(a, b, 99)

	// Same similarity and bands either way
	assert.Equal(t, loose.Similarity, strict.Similarity)
	assert.Equal(t, loose.Status, strict.Status)
	assert.Equal(t, loose.Color, strict.Color)

	assert.True(t, loose.Match)
	assert.False(t, strict.Match)
}

func TestCompareNamesMissing(t *testing.T) {
	for _, pair := range [][2]string{{"", "Joe's Pizza"}, {"Joe's Pizza", ""}, {"   ", "Joe's Pizza"}} {
		result := CompareNames(pair[0], pair[1], 0)

		assert.False(t, result.Match)
		assert.Equal(t, 0, result.Similarity)
		assert.Equal(t, StatusMissing, result.Status)
		assert.Equal(t, ColorRed, result.Color)
		assert.NotEmpty(t, result.Message)
	}
}

func TestCompareAddressesAbbreviationsCollapse(t *testing.T) {
	result := CompareAddresses("123 Main Street, Suite 100", "123 Main St, Ste 100", 0)

	assert.Equal(t, 100, result.Similarity, "abbreviation table should collapse both to the same string")
	assert.Equal(t, StatusPerfect, result.Status)
	assert.Equal(t, ColorGreen, result.Color)
	assert.True(t, result.Match)
}

func TestCompareAddressesMismatch(t *testing.T) {
	result := CompareAddresses("123 Main Street", "987 Completely Different Blvd", 0)

	assert.Equal(t, StatusMismatch, result.Status)
	assert.Equal(t, ColorRed, result.Color)
	assert.False(t, result.Match)
}

func TestComparePhonesFormattingEquivalent(t *testing.T) {
	result := ComparePhones("(555) 123-4567", "555-123-4567")

	assert.Equal(t, 100, result.Similarity, "both should normalize to 5551234567")
	assert.Equal(t, StatusPerfect, result.Status)
	assert.True(t, result.Match)

	// Display formatting attached, never affecting the score
	assert.Equal(t, "(555) 123-4567", result.FormattedA)
	assert.Equal(t, "(555) 123-4567", result.FormattedB)
}

func TestComparePhonesCountryCodeGap(t *testing.T) {
	// 11 digits vs 10: the engine compares digit strings verbatim, so an
	// explicit country code reads as a different number.
	result := ComparePhones("+1-555-123-4567", "555-123-4567")

	assert.Less(t, result.Similarity, 100)
	assert.Equal(t, expectedSimilarity("15551234567", "5551234567"), result.Similarity)
	assert.Equal(t, "15551234567", result.FormattedA)
	assert.Equal(t, "(555) 123-4567", result.FormattedB)
}

func TestComparePhonesMissing(t *testing.T) {
	result := ComparePhones("no digits here", "555-123-4567")

	assert.Equal(t, StatusMissing, result.Status)
	assert.Equal(t, 0, result.Similarity)
	assert.Equal(t, ColorRed, result.Color)
}
