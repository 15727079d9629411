package nap

import "strings"

// GenerateVisualDiff produces a word-level diff between two values for
// display. It is a multiset difference over whitespace-separated words, not a
// sequence alignment: a word counts as removed when it occurs more often in a
// than in b, and as added in the opposite case. Good enough for highlighting
// what changed; scoring never looks at it.
func GenerateVisualDiff(a, b string) VisualDiff {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)

	countsA := make(map[string]int, len(wordsA))
	for _, w := range wordsA {
		countsA[w]++
	}
	countsB := make(map[string]int, len(wordsB))
	for _, w := range wordsB {
		countsB[w]++
	}

	var removed []string
	seen := make(map[string]bool)
	for _, w := range wordsA {
		if seen[w] {
			continue
		}
		seen[w] = true
		for i := 0; i < countsA[w]-countsB[w]; i++ {
			removed = append(removed, w)
		}
	}

	var added []string
	seen = make(map[string]bool)
	for _, w := range wordsB {
		if seen[w] {
			continue
		}
		seen[w] = true
		for i := 0; i < countsB[w]-countsA[w]; i++ {
			added = append(added, w)
		}
	}

	diff := VisualDiff{}
	if len(removed) > 0 {
		diff.Differences = append(diff.Differences, DiffChunk{Type: "removed", Words: removed})
	}
	if len(added) > 0 {
		diff.Differences = append(diff.Differences, DiffChunk{Type: "added", Words: added})
	}
	diff.HasDifferences = len(diff.Differences) > 0

	return diff
}
