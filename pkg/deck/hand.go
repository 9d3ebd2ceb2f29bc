package deck

import "sort"

// Hand represents a collection of cards
type Hand []Card

// HasRank returns true if the hand holds a card of the rank
func (h Hand) HasRank(rank int) bool {
	for _, c := range h {
		if c.Rank == rank {
			return true
		}
	}

	return false
}

// Take removes the first card of the rank and returns it
func (h *Hand) Take(rank int) (Card, bool) {
	for i, c := range *h {
		if c.Rank == rank {
			*h = append((*h)[:i:i], (*h)[i+1:]...)
			return c, true
		}
	}

	return Card{}, false
}

// Ranks returns the ranks held in ascending order
func (h Hand) Ranks() []int {
	ranks := make([]int, len(h))
	for i, c := range h {
		ranks[i] = c.Rank
	}

	sort.Ints(ranks)
	return ranks
}

func (h Hand) String() string {
	return CardsToString(h)
}
