package diamond

import (
	"errors"
	"testing"

	"diamond-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestNewHand(t *testing.T) {
	a := assert.New(t)

	h := NewHand(deck.Hearts)
	a.Equal(deck.Hearts, h.Suit())
	a.Equal(13, h.Len())
	a.Equal(0, h.Score())
	a.Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}, h.Remaining())
}

func TestHand_Play(t *testing.T) {
	a := assert.New(t)

	h := NewHand(deck.Hearts)
	a.True(h.HasRank(7))

	card, err := h.Play(7)
	a.NoError(err)
	a.Equal(deck.Card{Rank: 7, Suit: deck.Hearts}, card)
	a.False(h.HasRank(7))
	a.Equal(12, h.Len())
	a.NotContains(h.Remaining(), 7)

	// a rank can only be played once
	_, err = h.Play(7)
	a.True(errors.Is(err, ErrInvalidMove))
	a.EqualError(err, "player does not have 7 ♥ available")
	a.Equal(12, h.Len())

	// never part of the suit
	_, err = h.Play(14)
	a.True(errors.Is(err, ErrInvalidMove))
}

func TestHand_award(t *testing.T) {
	h := NewHand(deck.Clubs)
	h.award(5)
	h.award(3)
	assert.Equal(t, 8, h.Score())
}
