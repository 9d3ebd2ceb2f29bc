package diamond

import (
	"diamond-server/pkg/deck"
)

// Hand holds one participant's unplayed cards and score
type Hand struct {
	suit  deck.Suit
	cards deck.Hand
	score int
}

// NewHand returns a full 13-card hand of suit
func NewHand(suit deck.Suit) *Hand {
	return &Hand{
		suit:  suit,
		cards: deck.Hand(deck.NewSuitHand(suit)),
	}
}

// Suit returns the suit of the hand
func (h *Hand) Suit() deck.Suit {
	return h.suit
}

// Score returns the points won so far
func (h *Hand) Score() int {
	return h.score
}

// Len returns the number of cards left
func (h *Hand) Len() int {
	return len(h.cards)
}

// HasRank returns true if a card of the rank is still held
func (h *Hand) HasRank(rank int) bool {
	return h.cards.HasRank(rank)
}

// Play removes and returns the card of the rank
func (h *Hand) Play(rank int) (deck.Card, error) {
	card, ok := h.cards.Take(rank)
	if !ok {
		return deck.Card{}, &MoveError{
			Kind: MoveNotHeld,
			Suit: h.suit,
			Rank: rank,
		}
	}

	return card, nil
}

// Remaining returns the ranks still held, ascending
func (h *Hand) Remaining() []int {
	return h.cards.Ranks()
}

func (h *Hand) award(points int) {
	h.score += points
}
