package nap

import "math"

// DefaultMatchThreshold is the similarity score at or above which two field
// values are considered a match.
const DefaultMatchThreshold = 85

// Color band cutoffs. A similarity at or above PerfectThreshold is green, at
// or above SimilarThreshold is yellow, anything below is red.
const (
	PerfectThreshold = 95
	SimilarThreshold = 85
)

// LevenshteinDistance returns the classic edit distance between a and b:
// the minimum number of single-rune insertions, deletions and substitutions
// needed to turn one into the other, each at unit cost.
func LevenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	matrix := make([][]int, len(ra)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(rb)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost

			best := deletion
			if insertion < best {
				best = insertion
			}
			if substitution < best {
				best = substitution
			}
			matrix[i][j] = best
		}
	}

	return matrix[len(ra)][len(rb)]
}

// Similarity scores how close two strings are on a 0-100 scale, derived from
// the Levenshtein distance relative to the longer string. Two empty strings
// score 100.
func Similarity(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 100
	}

	distance := LevenshteinDistance(a, b)
	score := int(math.Round(float64(maxLen-distance) / float64(maxLen) * 100))

	// The formula stays in range on its own; the clamp guards the invariant.
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// statusFor maps a similarity score to its verdict band.
func statusFor(similarity int) (status, color string) {
	switch {
	case similarity >= PerfectThreshold:
		return StatusPerfect, ColorGreen
	case similarity >= SimilarThreshold:
		return StatusSimilar, ColorYellow
	default:
		return StatusMismatch, ColorRed
	}
}

// compareNormalized is the shared comparator core. Both inputs are expected
// to be normalized already. An empty value on either side short-circuits to
// the "missing" verdict regardless of the other value.
func compareNormalized(a, b string, threshold int, missingMsg string) FieldComparison {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	if a == "" || b == "" {
		return FieldComparison{
			Match:      false,
			Similarity: 0,
			Status:     StatusMissing,
			Color:      ColorRed,
			Message:    missingMsg,
		}
	}

	similarity := Similarity(a, b)
	status, color := statusFor(similarity)

	var message string
	switch status {
	case StatusPerfect:
		message = "Exact match"
	case StatusSimilar:
		message = "Minor differences detected"
	default:
		message = "Significant mismatch"
	}

	return FieldComparison{
		Match:      similarity >= threshold,
		Similarity: similarity,
		Status:     status,
		Color:      color,
		Message:    message,
	}
}

// CompareNames compares two business names. A threshold <= 0 uses
// DefaultMatchThreshold; the threshold only moves the Match boolean, the
// color bands are fixed.
func CompareNames(name1, name2 string, threshold int) FieldComparison {
	return compareNormalized(
		NormalizeName(name1),
		NormalizeName(name2),
		threshold,
		"Business name is missing",
	)
}

// CompareAddresses compares two addresses after abbreviation normalization.
func CompareAddresses(addr1, addr2 string, threshold int) FieldComparison {
	return compareNormalized(
		NormalizeAddress(addr1),
		NormalizeAddress(addr2),
		threshold,
		"Address is missing",
	)
}

// ComparePhones compares two phone numbers as bare digit strings and attaches
// display-formatted versions of both. Formatting never affects the score.
func ComparePhones(phone1, phone2 string) FieldComparison {
	result := compareNormalized(
		NormalizePhone(phone1),
		NormalizePhone(phone2),
		DefaultMatchThreshold,
		"Phone number is missing",
	)
	result.FormattedA = FormatPhone(phone1)
	result.FormattedB = FormatPhone(phone2)
	return result
}
