package diamond

import (
	"errors"
	"testing"

	"diamond-server/internal/rng"
	"diamond-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func choose(t *testing.T, hand *Hand, tier Tier, prize int, known []int) int {
	t.Helper()
	rank, err := ChooseCard(rng.NewSeeded(0), hand, tier, prize, nil, known)
	assert.NoError(t, err)
	return rank
}

func TestChooseCard_emptyHand(t *testing.T) {
	for _, tier := range Tiers() {
		_, err := ChooseCard(rng.NewSeeded(0), handWith(), tier, 5, nil, nil)
		assert.True(t, errors.Is(err, ErrEngineFault), tier.String())
	}
}

func TestChooseCard_unknownTier(t *testing.T) {
	_, err := ChooseCard(rng.NewSeeded(0), handWith(1, 2), Tier(7), 5, nil, nil)
	assert.True(t, errors.Is(err, ErrEngineFault))
}

func TestChooseCard_doesNotMutate(t *testing.T) {
	for _, tier := range Tiers() {
		h := NewHand(deck.Spades)
		_ = choose(t, h, tier, 12, []int{3, 4})
		assert.Equal(t, 13, h.Len(), tier.String())
	}
}

func TestChooseCard_easy(t *testing.T) {
	a := assert.New(t)

	gen := rng.NewSeeded(99)
	h := NewHand(deck.Spades)
	played := make(map[int]bool)
	for h.Len() > 0 {
		rank, err := ChooseCard(gen, h, TierEasy, 7, nil, nil)
		a.NoError(err)
		a.True(h.HasRank(rank))
		a.False(played[rank])
		played[rank] = true

		_, err = h.Play(rank)
		a.NoError(err)
	}

	a.Equal(13, len(played))

	_, err := ChooseCard(nil, NewHand(deck.Spades), TierEasy, 7, nil, nil)
	a.True(errors.Is(err, ErrEngineFault))
}

func TestChooseCard_medium(t *testing.T) {
	a := assert.New(t)

	// matches the prize
	a.Equal(7, choose(t, handWith(2, 7, 9), TierMedium, 7, nil))
	// no match, smallest above
	a.Equal(9, choose(t, handWith(2, 6, 9, 12), TierMedium, 7, nil))
	// nothing above, smallest overall
	a.Equal(2, choose(t, handWith(2, 3, 5), TierMedium, 7, nil))
}

func TestChooseCard_hard(t *testing.T) {
	a := assert.New(t)

	a.Equal(7, choose(t, handWith(2, 7, 9), TierHard, 7, nil))
	a.Equal(9, choose(t, handWith(2, 6, 9, 12), TierHard, 7, nil))
	a.Equal(2, choose(t, handWith(2, 3, 5), TierHard, 7, nil))
	a.Equal(13, choose(t, handWith(1, 13), TierHard, 13, nil))
	a.Equal(1, choose(t, handWith(1, 13), TierHard, 1, nil))
}

func TestChooseCard_expert(t *testing.T) {
	a := assert.New(t)

	// low prize, dump the smallest card
	a.Equal(1, choose(t, NewHand(deck.Spades), TierExpert, 9, []int{13}))
	a.Equal(4, choose(t, handWith(4, 10, 13), TierExpert, 1, nil))

	// high prize, nothing known: beat the neutral 10
	a.Equal(11, choose(t, NewHand(deck.Spades), TierExpert, 10, nil))

	// high prize, beat the opponent's best card by as little as possible
	a.Equal(10, choose(t, NewHand(deck.Spades), TierExpert, 12, []int{2, 9, 4}))
	a.Equal(13, choose(t, NewHand(deck.Spades), TierExpert, 12, []int{12, 3}))

	// cannot beat the opponent: smallest card >= prize
	a.Equal(11, choose(t, handWith(3, 11, 12), TierExpert, 11, []int{13}))
	// nothing >= prize either: smallest card
	a.Equal(3, choose(t, handWith(3, 8, 9), TierExpert, 12, []int{13}))
}
