package diamond

import (
	"testing"

	"diamond-server/internal/rng"
	"diamond-server/pkg/deck"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// newTestGame returns a game whose prize deck is dealt in the order of prizes (e.g. "7d,1d,...")
// An empty prizes string keeps the seeded shuffle.
func newTestGame(t *testing.T, opts Options, prizes string) *Game {
	t.Helper()

	if opts.Generator == nil {
		opts.Generator = rng.NewSeeded(1)
	}

	g, err := NewGame(logrus.StandardLogger(), opts)
	require.NoError(t, err)

	if prizes != "" {
		g.prizes.Cards = deck.CardsFromString(prizes)
		require.Equal(t, RoundsPerGame, len(g.prizes.Cards))
		g.remainingPrizes = g.prizes.Ranks()
	}

	return g
}

// handWith returns a spades hand holding only ranks
func handWith(ranks ...int) *Hand {
	h := &Hand{suit: deck.Spades}
	for _, r := range ranks {
		h.cards = append(h.cards, deck.Card{Rank: r, Suit: deck.Spades})
	}

	return h
}

func pointsAwarded(g *Game) int {
	total := 0
	for _, r := range g.history {
		for _, pts := range r.Awards {
			total += pts
		}
	}

	return total
}

func prizesDrawn(g *Game) int {
	total := 0
	for _, r := range g.history {
		total += r.Prize.Rank
	}

	return total
}

const ascendingPrizes = "1d,2d,3d,4d,5d,6d,7d,8d,9d,10d,11d,12d,13d"
