package diamond

import (
	"diamond-server/pkg/deck"
)

// ParticipantStatus is a participant as seen in a status snapshot
type ParticipantStatus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Suit      deck.Suit `json:"suit"`
	Tier      string    `json:"level,omitempty"`
	Strategy  string    `json:"strategy,omitempty"`
	Score     int       `json:"score"`
	Remaining []int     `json:"remaining"`
}

// Status is a read-only snapshot of a game
type Status struct {
	GameID          string              `json:"gameId"`
	State           State               `json:"state"`
	Active          bool                `json:"active"`
	Round           int                 `json:"round"`
	Participants    []ParticipantStatus `json:"participants"`
	PrizesRemaining int                 `json:"prizesRemaining"`
	Tiers           []string            `json:"levels"`
}

// Scores returns participant ID to score
func (s *Status) Scores() map[string]int {
	scores := make(map[string]int, len(s.Participants))
	for _, p := range s.Participants {
		scores[p.ID] = p.Score
	}

	return scores
}

// Participant returns the participant with the ID
func (s *Status) Participant(id string) (ParticipantStatus, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}

	return ParticipantStatus{}, false
}

// Status returns a snapshot of the game
func (g *Game) Status() *Status {
	participants := make([]ParticipantStatus, len(g.participants))
	for i, p := range g.participants {
		participants[i] = g.participantStatus(p)
	}

	return &Status{
		GameID:          g.id,
		State:           g.state,
		Active:          g.IsActive(),
		Round:           g.round,
		Participants:    participants,
		PrizesRemaining: g.prizes.Len() - g.round,
		Tiers:           g.tierNames(),
	}
}

func (g *Game) participantStatus(p *Participant) ParticipantStatus {
	ps := ParticipantStatus{
		ID:        p.ID,
		Name:      p.Name,
		Kind:      p.Kind,
		Suit:      p.hand.Suit(),
		Score:     p.hand.Score(),
		Remaining: p.hand.Remaining(),
	}

	if p.IsBot() {
		ps.Tier = p.Tier.String()
		ps.Strategy = p.Tier.Strategy()
	}

	return ps
}

func (g *Game) tierNames() []string {
	bots := g.bots()
	tiers := make([]string, len(bots))
	for i, b := range bots {
		tiers[i] = b.Tier.String()
	}

	return tiers
}

// ScoreLine is a participant's score in a summary
type ScoreLine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// PlaySummary is a play rendered for display
type PlaySummary struct {
	ParticipantID string `json:"participantId"`
	Card          string `json:"card"`
}

// RoundSummary is a round rendered for display
type RoundSummary struct {
	Round   int           `json:"round"`
	Prize   string        `json:"diamond"`
	Plays   []PlaySummary `json:"plays"`
	Winners []string      `json:"winners"`
	Points  int           `json:"pointsAwarded"`
}

// Summary contains the scores, the leaders and the round-by-round history
type Summary struct {
	GameID  string         `json:"gameId"`
	State   State          `json:"state"`
	Round   int            `json:"round"`
	Scores  []ScoreLine    `json:"finalScores"`
	Winners []string       `json:"winners"`
	Tiers   []string       `json:"levels"`
	Rounds  []RoundSummary `json:"rounds"`
}

// Name returns the display name of a participant ID in the summary
func (s *Summary) Name(id string) string {
	for _, line := range s.Scores {
		if line.ID == id {
			return line.Name
		}
	}

	return id
}

// Summary returns the game summary. Winners holds every participant tied at the top score.
func (g *Game) Summary() *Summary {
	scores := make([]ScoreLine, len(g.participants))
	high := 0
	for i, p := range g.participants {
		scores[i] = ScoreLine{ID: p.ID, Name: p.Name, Score: p.hand.Score()}
		if i == 0 || scores[i].Score > high {
			high = scores[i].Score
		}
	}

	var winners []string
	for _, line := range scores {
		if line.Score == high {
			winners = append(winners, line.ID)
		}
	}

	rounds := make([]RoundSummary, len(g.history))
	for i, r := range g.history {
		plays := make([]PlaySummary, len(r.Plays))
		for j, p := range r.Plays {
			plays[j] = PlaySummary{ParticipantID: p.ParticipantID, Card: p.Card.String()}
		}

		rounds[i] = RoundSummary{
			Round:   r.Round,
			Prize:   r.Prize.String(),
			Plays:   plays,
			Winners: append([]string{}, r.Winners...),
			Points:  r.Points,
		}
	}

	return &Summary{
		GameID:  g.id,
		State:   g.state,
		Round:   g.round,
		Scores:  scores,
		Winners: winners,
		Tiers:   g.tierNames(),
		Rounds:  rounds,
	}
}
