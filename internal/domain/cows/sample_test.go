package cows

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSample(t *testing.T) {
	n := 0
	newID := func() string { n++; return "s" + strconv.Itoa(n) }
	taken := map[string]struct{}{"1000": {}}

	cows := GenerateSample(50, fixedNow, rand.New(rand.NewPCG(7, 7)), newID, taken)
	require.Len(t, cows, 50)

	seen := map[string]bool{}
	for i, c := range cows {
		assert.False(t, seen[c.EarTag], "tag repetido %s", c.EarTag)
		seen[c.EarTag] = true
		assert.NotEqual(t, "1000", c.EarTag)
		assert.Len(t, c.EarTag, 4)
		if i > 0 {
			assert.LessOrEqual(t, cows[i-1].EarTag, c.EarTag)
		}

		assert.True(t, c.Sex.Valid())
		assert.True(t, c.Status.Valid())
		assert.Contains(t, samplePens, c.Pen)

		require.NotEmpty(t, c.Events)
		assert.Equal(t, EventCreated, c.Events[0].Type, "created es el más antiguo")
		assert.True(t, c.CreatedAt.Before(fixedNow))

		// Weight refleja el último pesaje
		w, ok := LatestWeight(c)
		require.True(t, ok)
		require.NotNil(t, c.Weight)
		assert.Equal(t, w, *c.Weight)
		assert.GreaterOrEqual(t, w, 300.0)
		assert.Less(t, w, 500.0)

		for _, e := range c.Events {
			if e.Type == EventPenMove {
				assert.NotEqual(t, e.FromPen, e.ToPen)
			}
		}
	}
}

func TestWeighInDaysAgo(t *testing.T) {
	// 10 días, 3 pesajes: floor(2.5), floor(5), floor(7.5)
	got := []int{weighInDaysAgo(10, 3, 0), weighInDaysAgo(10, 3, 1), weighInDaysAgo(10, 3, 2)}
	assert.Equal(t, []int{2, 5, 7}, got)

	assert.Equal(t, 0, weighInDaysAgo(0, 1, 0))
	assert.Equal(t, 49, weighInDaysAgo(99, 1, 0))
}
