package diamond

import (
	"diamond-server/internal/rng"
	"diamond-server/pkg/deck"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RoundsPerGame is the number of prize cards, and so the number of rounds
const RoundsPerGame = deck.MaxRank

// State is where a game is in its lifecycle
type State string

// State constants
const (
	StateActive    State = "active"
	StateFinished  State = "finished"
	StateAbandoned State = "abandoned"
)

// Game is a game of Diamond
// A Game is not safe for concurrent use; the room package serializes access to it
type Game struct {
	id           string
	logger       logrus.FieldLogger
	gen          rng.Generator
	prizes       *deck.Deck
	participants []*Participant
	humanCount   int

	round           int
	remainingPrizes []int
	history         []RoundResult
	state           State
}

// NewGame returns a new game, ready for its first round
func NewGame(logger logrus.FieldLogger, opts Options) (*Game, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	participants := make([]*Participant, 0, len(opts.Humans)+len(opts.Bots))
	for i, seat := range opts.Humans {
		participants = append(participants, newHuman(i, seat))
	}

	for i, seat := range opts.Bots {
		participants = append(participants, newBot(i, seat))
	}

	prizes := deck.NewPrizeDeck(opts.Generator)
	id := uuid.New().String()

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Game{
		id:              id,
		logger:          logger.WithField("game", id),
		gen:             opts.Generator,
		prizes:          prizes,
		participants:    participants,
		humanCount:      len(opts.Humans),
		remainingPrizes: prizes.Ranks(),
		history:         make([]RoundResult, 0, RoundsPerGame),
		state:           StateActive,
	}, nil
}

// ID returns the game's unique identifier
func (g *Game) ID() string {
	return g.id
}

// Round returns the number of rounds played
func (g *Game) Round() int {
	return g.round
}

// State returns the lifecycle state
func (g *Game) State() State {
	return g.state
}

// IsActive returns true if another round can be played
func (g *Game) IsActive() bool {
	return g.state == StateActive && g.round < RoundsPerGame
}

// CurrentPrize returns the prize card the next round will be played for
func (g *Game) CurrentPrize() (deck.Card, bool) {
	if !g.IsActive() {
		return deck.Card{}, false
	}

	card, err := g.prizes.At(g.round)
	if err != nil {
		return deck.Card{}, false
	}

	return card, true
}

// History returns a copy of every resolved round
func (g *Game) History() []RoundResult {
	history := make([]RoundResult, len(g.history))
	for i, r := range g.history {
		history[i] = r.clone()
	}

	return history
}

func (g *Game) humans() []*Participant {
	return g.participants[:g.humanCount]
}

func (g *Game) bots() []*Participant {
	return g.participants[g.humanCount:]
}

// PlayRound plays the next round. choices holds one rank per human, in seat order;
// bot-only games pass nil.
// Everything is validated before anything is mutated, so a failed round leaves the game untouched.
func (g *Game) PlayRound(choices []int) (RoundResult, error) {
	if !g.IsActive() {
		return RoundResult{}, ErrGameOver
	}

	humans := g.humans()
	if len(choices) != len(humans) {
		return RoundResult{}, &MoveError{
			Kind: MoveWrongCount,
			Want: len(humans),
			Got:  len(choices),
		}
	}

	for i, h := range humans {
		if !h.hand.HasRank(choices[i]) {
			return RoundResult{}, &MoveError{
				Kind:          MoveNotHeld,
				ParticipantID: h.ID,
				Name:          h.Name,
				Suit:          h.hand.Suit(),
				Rank:          choices[i],
			}
		}
	}

	prize, err := g.prizes.At(g.round)
	if err != nil {
		return RoundResult{}, engineFault("no prize card for round %d: %v", g.round+1, err)
	}

	remainingPrizes := without(g.remainingPrizes, prize.Rank)

	// bots see what the humans hold after this round's plays, never each other or future prizes
	var known []int
	for i, h := range humans {
		known = append(known, without(h.hand.Remaining(), choices[i])...)
	}

	bots := g.bots()
	botChoices := make([]int, len(bots))
	for i, b := range bots {
		rank, err := ChooseCard(g.gen, b.hand, b.Tier, prize.Rank, remainingPrizes, known)
		if err != nil {
			return RoundResult{}, err
		}

		if !b.hand.HasRank(rank) {
			return RoundResult{}, engineFault("%s strategy chose %d, which %s does not hold", b.Tier, rank, b.ID)
		}

		botChoices[i] = rank
	}

	// nothing below can fail
	g.round++
	g.remainingPrizes = remainingPrizes

	plays := make([]Play, 0, len(g.participants))
	for i, p := range g.participants {
		var rank int
		if i < len(humans) {
			rank = choices[i]
		} else {
			rank = botChoices[i-len(humans)]
		}

		card, err := p.hand.Play(rank)
		if err != nil {
			// validated above
			panic(err)
		}

		plays = append(plays, Play{ParticipantID: p.ID, Card: card})
	}

	winners, awards := splitPoints(plays, prize.Rank)
	for _, p := range g.participants {
		if pts, ok := awards[p.ID]; ok {
			p.hand.award(pts)
		}
	}

	result := RoundResult{
		Round:   g.round,
		Prize:   prize,
		Plays:   plays,
		Winners: winners,
		Points:  prize.Rank,
		Awards:  awards,
	}
	g.history = append(g.history, result)

	g.logger.WithFields(logrus.Fields{
		"round":   result.Round,
		"prize":   prize.Rank,
		"winners": winners,
	}).Debug("round resolved")

	if g.round >= RoundsPerGame {
		g.state = StateFinished
		g.logger.WithField("scores", g.scores()).Info("game finished")
	}

	return result.clone(), nil
}

// Abandon ends an active game early
// Calling it on a game that is already over does nothing
func (g *Game) Abandon() {
	if g.state != StateActive {
		return
	}

	g.state = StateAbandoned
	g.logger.WithField("round", g.round).Info("game abandoned")
}

func (g *Game) scores() map[string]int {
	scores := make(map[string]int, len(g.participants))
	for _, p := range g.participants {
		scores[p.ID] = p.hand.Score()
	}

	return scores
}

// without returns a copy of values with the first occurrence of v removed
func without(values []int, v int) []int {
	out := make([]int, 0, len(values))
	removed := false
	for _, val := range values {
		if !removed && val == v {
			removed = true
			continue
		}

		out = append(out, val)
	}

	return out
}
