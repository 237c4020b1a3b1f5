package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeIdenticalContentIsAllContext(t *testing.T) {
	lines := Compute([]byte("a\nb\nc\n"), []byte("a\nb\nc\n"))
	for _, l := range lines {
		assert.Equal(t, Context, l.Kind)
	}
	assert.Len(t, lines, 3)
}

func TestComputeDetectsAdditionAndRemoval(t *testing.T) {
	before := []byte("a\nb\nc\n")
	after := []byte("a\nx\nc\n")
	lines := Compute(before, after)

	var kinds []LineKind
	for _, l := range lines {
		kinds = append(kinds, l.Kind)
	}
	assert.Contains(t, kinds, Removed)
	assert.Contains(t, kinds, Added)
}

func TestFormatMarkers(t *testing.T) {
	lines := []Line{
		{Kind: Context, Content: "same"},
		{Kind: Added, Content: "new"},
		{Kind: Removed, Content: "old"},
	}
	out := Format(lines)
	assert.Equal(t, "  same\n+ new\n- old\n", out)
}

func TestComputeEmptyInputs(t *testing.T) {
	assert.Empty(t, Compute(nil, nil))
}
