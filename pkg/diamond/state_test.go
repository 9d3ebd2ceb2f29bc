package diamond

import (
	"testing"

	"diamond-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestGame_Status(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, humanVsExpert(), "7d,1d,2d,3d,4d,5d,6d,8d,9d,10d,11d,12d,13d")
	_, err := g.PlayRound([]int{7})
	a.NoError(err)

	s := g.Status()
	a.Equal(g.ID(), s.GameID)
	a.Equal(StateActive, s.State)
	a.True(s.Active)
	a.Equal(1, s.Round)
	a.Equal(12, s.PrizesRemaining)
	a.Equal([]string{"expert"}, s.Tiers)
	a.Equal(map[string]int{"player1": 7, "bot1": 0}, s.Scores())

	human, ok := s.Participant("player1")
	a.True(ok)
	a.Equal(ParticipantStatus{
		ID:        "player1",
		Name:      "Alice",
		Kind:      KindHuman,
		Suit:      deck.Hearts,
		Score:     7,
		Remaining: []int{1, 2, 3, 4, 5, 6, 8, 9, 10, 11, 12, 13},
	}, human)

	bot, ok := s.Participant("bot1")
	a.True(ok)
	a.Equal("expert", bot.Tier)
	a.Equal("smart", bot.Strategy)
	a.Equal(KindBot, bot.Kind)
	a.Equal([]int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}, bot.Remaining)

	_, ok = s.Participant("bot2")
	a.False(ok)

	// snapshots are independent of the game
	s.Participants[0].Remaining[0] = 99
	a.Equal(1, g.Status().Participants[0].Remaining[0])
	a.Equal(1, g.Round())
}

func TestGame_Summary(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, humanVsExpert(), "7d,1d,2d,3d,4d,5d,6d,8d,9d,10d,11d,12d,13d")

	// nothing played yet, everyone is tied
	s := g.Summary()
	a.Equal([]string{"player1", "bot1"}, s.Winners)
	a.Empty(s.Rounds)

	_, err := g.PlayRound([]int{7})
	a.NoError(err)

	s = g.Summary()
	a.Equal(g.ID(), s.GameID)
	a.Equal(StateActive, s.State)
	a.Equal(1, s.Round)
	a.Equal([]ScoreLine{
		{ID: "player1", Name: "Alice", Score: 7},
		{ID: "bot1", Name: "Robot", Score: 0},
	}, s.Scores)
	a.Equal([]string{"player1"}, s.Winners)
	a.Equal([]string{"expert"}, s.Tiers)
	a.Equal([]RoundSummary{{
		Round: 1,
		Prize: "7 ♦",
		Plays: []PlaySummary{
			{ParticipantID: "player1", Card: "7 ♥"},
			{ParticipantID: "bot1", Card: "1 ♠"},
		},
		Winners: []string{"player1"},
		Points:  7,
	}}, s.Rounds)

	a.Equal("Alice", s.Name("player1"))
	a.Equal("Robot", s.Name("bot1"))
	a.Equal("bot9", s.Name("bot9"))
}

func TestGame_Summary_finished(t *testing.T) {
	a := assert.New(t)

	opts := BotOnlyOptions(TierHard, TierHard)
	g := newTestGame(t, opts, ascendingPrizes)
	for g.IsActive() {
		_, err := g.PlayRound(nil)
		a.NoError(err)
	}

	// identical bots tie every round, and bot1 collects the odd points
	s := g.Summary()
	a.Equal(StateFinished, s.State)
	a.Equal(13, len(s.Rounds))
	a.Equal([]string{"bot1"}, s.Winners)
	a.Equal(49, s.Scores[0].Score)
	a.Equal(42, s.Scores[1].Score)
	for _, r := range s.Rounds {
		a.Equal([]string{"bot1", "bot2"}, r.Winners)
	}
}
