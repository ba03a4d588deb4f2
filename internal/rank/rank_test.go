package rank

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/Sysinternals-jcd/internal/models"
)

func c(path string, dir models.Direction, depth int, kind models.MatchKind) models.Candidate {
	return models.Candidate{Path: path, Direction: dir, Depth: depth, Kind: kind}
}

func TestRankOrder(t *testing.T) {
	input := []models.Candidate{
		c("/p/down-partial-far", models.Down, 3, models.Partial),
		c("/p/up-partial", models.Up, 1, models.Partial),
		c("/p/b/down-exact", models.Down, 2, models.Exact),
		c("/p/a/down-exact", models.Down, 2, models.Exact),
		c("/up-exact-far", models.Up, 4, models.Exact),
		c("/p/down-partial-near", models.Down, 1, models.Partial),
		c("/p/up-exact-near", models.Up, 1, models.Exact),
		c("/p/down-exact-near", models.Down, 1, models.Exact),
	}

	got := Rank(input).Paths()

	assert.Equal(t, []string{
		"/p/up-exact-near",
		"/up-exact-far",
		"/p/down-exact-near",
		"/p/a/down-exact",
		"/p/b/down-exact",
		"/p/up-partial",
		"/p/down-partial-near",
		"/p/down-partial-far",
	}, got)
}

func TestRankExactBeforePartialRegardlessOfDirectionAndDepth(t *testing.T) {
	list := Rank([]models.Candidate{
		c("/a", models.Up, 1, models.Partial),
		c("/b/c/d/e/f/g/h/i", models.Down, 8, models.Exact),
	})

	require.Len(t, list, 2)
	assert.Equal(t, models.Exact, list[0].Kind)
}

func TestRankDeduplicates(t *testing.T) {
	list := Rank([]models.Candidate{
		c("/x/dup", models.Down, 3, models.Partial),
		c("/x/other", models.Down, 1, models.Partial),
		c("/x/dup", models.Down, 1, models.Partial),
		c("/x/dup", models.Up, 2, models.Partial),
	})

	require.Len(t, list, 2)
	assert.Equal(t, c("/x/dup", models.Up, 2, models.Partial), list[0])
	assert.Equal(t, "/x/other", list[1].Path)
}

func TestRankDeterministicUnderShuffle(t *testing.T) {
	var input []models.Candidate
	for _, p := range []string{"/a", "/b", "/c", "/a/b", "/a/c", "/b/a"} {
		input = append(input,
			c(p+"/up", models.Up, len(p), models.Exact),
			c(p+"/down", models.Down, len(p), models.Partial),
		)
	}

	want := Rank(input)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.Candidate(nil), input...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Rank(shuffled))
	}
}

func TestRankDoesNotModifyInput(t *testing.T) {
	input := []models.Candidate{
		c("/b", models.Down, 1, models.Partial),
		c("/a", models.Up, 1, models.Exact),
	}
	Rank(input)
	assert.Equal(t, "/b", input[0].Path)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func TestLess(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Candidate
	}{
		{"kind", c("/z", models.Down, 9, models.Exact), c("/a", models.Up, 0, models.Partial)},
		{"direction", c("/z", models.Up, 9, models.Exact), c("/a", models.Down, 1, models.Exact)},
		{"depth", c("/z", models.Down, 1, models.Partial), c("/a", models.Down, 2, models.Partial)},
		{"path", c("/a", models.Down, 1, models.Partial), c("/b", models.Down, 1, models.Partial)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Less(tt.a, tt.b))
			assert.False(t, Less(tt.b, tt.a))
		})
	}
}
