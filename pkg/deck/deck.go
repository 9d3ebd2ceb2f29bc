package deck

import (
	"errors"

	"diamond-server/internal/rng"
)

// ErrEndOfDeck is an error when a card past the end of the deck is requested
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck is an ordered set of cards
type Deck struct {
	Cards []Card `json:"cards"`
}

// NewSuitHand returns the 13 cards of suit in rank order
func NewSuitHand(suit Suit) []Card {
	cards := make([]Card, 0, MaxRank)
	for rank := MinRank; rank <= MaxRank; rank++ {
		cards = append(cards, Card{Rank: rank, Suit: suit})
	}

	return cards
}

// NewPrizeDeck returns the 13 diamonds shuffled once with gen
func NewPrizeDeck(gen rng.Generator) *Deck {
	d := &Deck{Cards: NewSuitHand(PrizeSuit)}
	rng.Shuffle(gen, len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})

	return d
}

// At returns the card at position i
// The deck is never consumed; callers keep their own draw pointer
func (d *Deck) At(i int) (Card, error) {
	if i < 0 || i >= len(d.Cards) {
		return Card{}, ErrEndOfDeck
	}

	return d.Cards[i], nil
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.Cards)
}

// Ranks returns the ranks in deck order
func (d *Deck) Ranks() []int {
	ranks := make([]int, len(d.Cards))
	for i, c := range d.Cards {
		ranks[i] = c.Rank
	}

	return ranks
}
