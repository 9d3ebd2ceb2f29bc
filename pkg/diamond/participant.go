package diamond

import "fmt"

// Kind is the kind of participant
type Kind string

// Kind constants
const (
	KindHuman Kind = "human"
	KindBot   Kind = "bot"
)

// Participant is a human or bot in the game
type Participant struct {
	ID   string
	Name string
	Kind Kind
	// Tier is only meaningful for bots
	Tier Tier

	hand *Hand
}

func newHuman(index int, seat Seat) *Participant {
	return &Participant{
		ID:   fmt.Sprintf("player%d", index+1),
		Name: seat.Name,
		Kind: KindHuman,
		hand: NewHand(seat.Suit),
	}
}

func newBot(index int, seat BotSeat) *Participant {
	return &Participant{
		ID:   fmt.Sprintf("bot%d", index+1),
		Name: seat.Name,
		Kind: KindBot,
		Tier: seat.Tier,
		hand: NewHand(seat.Suit),
	}
}

// IsBot returns true for automated participants
func (p *Participant) IsBot() bool {
	return p.Kind == KindBot
}
