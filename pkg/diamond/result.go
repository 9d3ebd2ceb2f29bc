package diamond

import (
	"diamond-server/pkg/deck"
)

// Play is a card a participant played in a round
type Play struct {
	ParticipantID string    `json:"participantId"`
	Card          deck.Card `json:"card"`
}

// RoundResult is the record of one resolved round
type RoundResult struct {
	Round   int            `json:"round"`
	Prize   deck.Card      `json:"prize"`
	Plays   []Play         `json:"plays"`
	Winners []string       `json:"winners"`
	Points  int            `json:"points"`
	Awards  map[string]int `json:"awards"`
}

// clone returns a copy that shares nothing with r
func (r RoundResult) clone() RoundResult {
	c := r
	c.Plays = append([]Play{}, r.Plays...)
	c.Winners = append([]string{}, r.Winners...)
	c.Awards = make(map[string]int, len(r.Awards))
	for id, pts := range r.Awards {
		c.Awards[id] = pts
	}

	return c
}

// PlayBy returns the card the participant played
func (r RoundResult) PlayBy(participantID string) (deck.Card, bool) {
	for _, p := range r.Plays {
		if p.ParticipantID == participantID {
			return p.Card, true
		}
	}

	return deck.Card{}, false
}

// IsTie returns true if more than one participant split the prize
func (r RoundResult) IsTie() bool {
	return len(r.Winners) > 1
}

// splitPoints finds the highest card in plays and splits points among everyone who played it.
// Each winner gets points / n; the remainder goes to the first winner in play order.
func splitPoints(plays []Play, points int) (winners []string, awards map[string]int) {
	high := 0
	for _, p := range plays {
		if p.Card.Rank > high {
			high = p.Card.Rank
		}
	}

	for _, p := range plays {
		if p.Card.Rank == high {
			winners = append(winners, p.ParticipantID)
		}
	}

	awards = make(map[string]int, len(winners))
	if len(winners) == 0 {
		return winners, awards
	}

	share := points / len(winners)
	for _, id := range winners {
		awards[id] = share
	}

	awards[winners[0]] += points % len(winners)
	return winners, awards
}
