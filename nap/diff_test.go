package nap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func chunkByType(diff VisualDiff, chunkType string) []string {
	for _, chunk := range diff.Differences {
		if chunk.Type == chunkType {
			return chunk.Words
		}
	}
	return nil
}

func TestGenerateVisualDiffIdentical(t *testing.T) {
	diff := GenerateVisualDiff("123 Main St", "123 Main St")

	assert.False(t, diff.HasDifferences)
	assert.Empty(t, diff.Differences)
}

func TestGenerateVisualDiffAddedAndRemoved(t *testing.T) {
	diff := GenerateVisualDiff("123 Main Street", "123 Main St")

	assert.True(t, diff.HasDifferences)
	assert.Equal(t, []string{"Street"}, chunkByType(diff, "removed"))
	assert.Equal(t, []string{"St"}, chunkByType(diff, "added"))
}

func TestGenerateVisualDiffOnlyAdded(t *testing.T) {
	diff := GenerateVisualDiff("Joe's Pizza", "Joe's Pizza Restaurant")

	assert.True(t, diff.HasDifferences)
	assert.Nil(t, chunkByType(diff, "removed"), "no removed chunk should be emitted when nothing was removed")
	assert.Equal(t, []string{"Restaurant"}, chunkByType(diff, "added"))
}

func TestGenerateVisualDiffMultisetCounts(t *testing.T) {
	// "very" occurs twice on one side and once on the other; the excess
	// occurrence counts as removed.
	diff := GenerateVisualDiff("very very good pizza", "very good pizza")

	assert.Equal(t, []string{"very"}, chunkByType(diff, "removed"))
	assert.Nil(t, chunkByType(diff, "added"))
}

func TestGenerateVisualDiffReorderedWordsAreEqual(t *testing.T) {
	// Multiset semantics: position does not matter, only occurrence counts.
	diff := GenerateVisualDiff("Main 123 St", "123 Main St")

	assert.False(t, diff.HasDifferences)
}

func TestGenerateVisualDiffEmptyInputs(t *testing.T) {
	assert.False(t, GenerateVisualDiff("", "").HasDifferences)

	diff := GenerateVisualDiff("", "something new")
	assert.True(t, diff.HasDifferences)
	assert.Equal(t, []string{"something", "new"}, chunkByType(diff, "added"))
}
