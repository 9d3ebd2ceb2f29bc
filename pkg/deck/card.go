package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
	Clubs    Suit = "clubs"
)

// Suits is every suit in seating order
var Suits = []Suit{Diamonds, Hearts, Spades, Clubs}

// PrizeSuit is the suit the prize deck is made from
const PrizeSuit = Diamonds

// rank bounds, Ace is always low
const (
	LowAce  = 1
	Jack    = 11
	Queen   = 12
	King    = 13
	MinRank = LowAce
	MaxRank = King
)

// Symbol returns the display symbol for the suit
func (s Suit) Symbol() string {
	switch s {
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	}

	panic(fmt.Sprintf("unknown suit: %q", string(s)))
}

func (s Suit) letter() string {
	switch s {
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	case Clubs:
		return "c"
	}

	return ""
}

// IsValid returns true if s is one of the four suits
func (s Suit) IsValid() bool {
	return s.letter() != ""
}

// SuitFromString accepts a suit name, its symbol, or its single-letter abbreviation
func SuitFromString(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "diamonds", "diamond", "d", "♦", "♢":
		return Diamonds, nil
	case "hearts", "heart", "h", "♥", "♡":
		return Hearts, nil
	case "spades", "spade", "s", "♠":
		return Spades, nil
	case "clubs", "club", "c", "♣":
		return Clubs, nil
	}

	return "", fmt.Errorf("unknown suit: %s", s)
}

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// String renders the card as "<rank> <symbol>", e.g. "7 ♦"
func (c Card) String() string {
	return fmt.Sprintf("%d %s", c.Rank, c.Suit.Symbol())
}

var cardRx = regexp.MustCompile(`(?i)^([1-9]|1[0-3])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 1 and <= 13 and suit in [cdhs]
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	suit, err := SuitFromString(match[2])
	if err != nil {
		// should never be hit due to the regexp
		panic(err)
	}

	return Card{Rank: rank, Suit: suit}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	parts := strings.Split(s, ",")
	cards := make([]Card, len(parts))
	for i, part := range parts {
		cards[i] = CardFromString(part)
	}

	return cards
}

// CardToString converts a card (7 of diamonds) to its compact form (7d)
func CardToString(card Card) string {
	return strconv.Itoa(card.Rank) + card.Suit.letter()
}

// CardsToString will convert a slice of cards to a string in the format of 1d,2h,3s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
