package mux

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"diamond-server/internal/rng"
	"diamond-server/pkg/deck"
	"diamond-server/pkg/diamond"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostGame_defaults(t *testing.T) {
	a := assert.New(t)
	ts, pitBoss := newTestServer(t, nil)

	var resp postGameResponse
	assertPost(t, ts, "/game", "", &resp, http.StatusCreated)

	a.NotEmpty(resp.GameID)
	a.Equal(resp.GameID, resp.Status.GameID)
	a.True(resp.Status.Active)
	a.Equal(2, len(resp.Status.Participants))
	a.Equal("player1", resp.Status.Participants[0].ID)
	a.Equal(deck.Hearts, resp.Status.Participants[0].Suit)
	a.Equal("bot1", resp.Status.Participants[1].ID)
	a.Equal("medium", resp.Status.Participants[1].Tier)
	a.Equal(1, pitBoss.Len())
}

func TestPostGame_options(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, nil)

	payload := map[string]interface{}{
		"humans": []map[string]string{
			{"name": "Alice", "suit": "♣"},
			{"name": "Bob"},
		},
		"bots": []map[string]string{
			{"name": "Deep Blue", "level": "expert"},
			{"level": "greedy"},
		},
	}

	var resp postGameResponse
	assertPost(t, ts, "/game", payload, &resp, http.StatusCreated)

	p := resp.Status.Participants
	a.Equal(4, len(p))
	a.Equal("Alice", p[0].Name)
	a.Equal(deck.Clubs, p[0].Suit)
	a.Equal("Bob", p[1].Name)
	a.Equal(deck.Diamonds, p[1].Suit)
	a.Equal("Deep Blue", p[2].Name)
	a.Equal("expert", p[2].Tier)
	a.Equal(deck.Spades, p[2].Suit)
	a.Equal("hard", p[3].Tier)
	a.Equal(deck.Hearts, p[3].Suit)
	a.NotEmpty(p[3].Name)
	a.Equal([]string{"expert", "hard"}, resp.Status.Tiers)
}

func TestPostGame_errors(t *testing.T) {
	a := assert.New(t)
	ts, pitBoss := newTestServer(t, nil)

	var errObj errorResponse
	assertPost(t, ts, "/game", map[string]interface{}{
		"bots": []map[string]string{{}, {}, {}},
	}, &errObj, http.StatusBadRequest)
	a.Contains(errObj.Message, "expected 1-2 bots, got 3")

	assertPost(t, ts, "/game", map[string]interface{}{
		"humans": []map[string]string{{"suit": "stars"}},
		"bots":   []map[string]string{{}},
	}, &errObj, http.StatusBadRequest)
	a.Contains(errObj.Message, "stars")

	assertPost(t, ts, "/game", map[string]interface{}{
		"bots": []map[string]string{{"level": "grandmaster"}},
	}, &errObj, http.StatusBadRequest)

	assertPost(t, ts, "/game", "{", &errObj, http.StatusBadRequest)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/game", strings.NewReader("{}"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")
	assertDo(t, req, &errObj, http.StatusUnsupportedMediaType)
	a.Equal("Unsupported Media Type", errObj.Message)

	a.Equal(0, pitBoss.Len())
}

func TestGameUUID_play(t *testing.T) {
	a := assert.New(t)
	ts, pitBoss := newTestServer(t, nil)

	opts := diamond.DefaultOptions()
	opts.Generator = rng.NewSeeded(11)
	dealer, err := pitBoss.Create(opts)
	require.NoError(t, err)
	path := "/game/" + dealer.ID()

	var status diamond.Status
	assertGet(t, ts, path, &status, http.StatusOK)
	a.Equal(0, status.Round)
	a.Equal(diamond.RoundsPerGame, status.PrizesRemaining)

	var played playResponse
	assertPost(t, ts, path+"/play", playPayload{Values: []int{13}}, &played, http.StatusOK)
	a.Equal(1, played.Result.Round)
	a.Equal(deck.Diamonds, played.Result.Prize.Suit)
	a.Equal(2, len(played.Result.Plays))
	a.Equal(deck.Card{Rank: 13, Suit: deck.Hearts}, played.Result.Plays[0].Card)
	a.Equal(1, played.Status.Round)
	a.NotContains(played.Status.Participants[0].Remaining, 13)

	var errObj errorResponse
	assertPost(t, ts, path+"/play", playPayload{Values: []int{13}}, &errObj, http.StatusBadRequest)
	a.Equal("You does not have 13 ♥ available", errObj.Message)

	assertPost(t, ts, path+"/play", playPayload{Values: []int{1, 2}}, &errObj, http.StatusBadRequest)
	a.Equal("expected 1 card choice(s), got 2", errObj.Message)

	assertPost(t, ts, path+"/play", "[", &errObj, http.StatusBadRequest)

	var score scoreResponse
	assertGet(t, ts, path+"/score", &score, http.StatusOK)
	a.Equal(dealer.ID(), score.GameID)
	a.Equal(1, score.Round)
	a.True(score.Active)
	a.Equal(played.Result.Prize.Rank, score.Scores["player1"]+score.Scores["bot1"])

	var summary diamond.Summary
	assertGet(t, ts, path+"/summary", &summary, http.StatusOK)
	a.Equal(1, len(summary.Rounds))
	a.Equal("13 ♥", summary.Rounds[0].Plays[0].Card)

	var abandoned abandonResponse
	assertPost(t, ts, path+"/abandon", "", &abandoned, http.StatusOK)
	a.Equal(diamond.StateAbandoned, abandoned.State)
	a.False(abandoned.Active)

	assertPost(t, ts, path+"/play", playPayload{Values: []int{1}}, &errObj, http.StatusConflict)
	a.Equal(diamond.ErrGameOver.Error(), errObj.Message)

	// abandoning twice is harmless
	assertPost(t, ts, path+"/abandon", "", &abandoned, http.StatusOK)
	a.Equal(diamond.StateAbandoned, abandoned.State)
}

func TestGameUUID_export(t *testing.T) {
	a := assert.New(t)
	ts, pitBoss := newTestServer(t, nil)

	opts := diamond.BotOnlyOptions(diamond.TierEasy, diamond.TierExpert)
	opts.Generator = rng.NewSeeded(4)
	dealer, err := pitBoss.Create(opts)
	require.NoError(t, err)

	for i := 0; i < diamond.RoundsPerGame; i++ {
		_, err := dealer.PlayRound(nil)
		require.NoError(t, err)
	}

	resp, err := http.Get(ts.URL + "/game/" + dealer.ID() + "/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	a.Equal(http.StatusOK, resp.StatusCode)
	a.Equal("text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	a.Contains(resp.Header.Get("Content-Disposition"), dealer.ID())

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(string(body), "\n")
	a.Equal("Game Number,Bot 1 Level,Bot 2 Level,Round,Diamond,Bot 1 Play,Bot 2 Play,Winner,Points Awarded", lines[0])
	a.True(strings.HasPrefix(lines[1], "1,easy,expert,1,"))
}

func TestGameUUID_notFound(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, nil)

	path := "/game/" + uuid.New().String()

	var errObj errorResponse
	assertGet(t, ts, path, &errObj, http.StatusNotFound)
	a.Equal("game not found", errObj.Message)

	assertGet(t, ts, path+"/score", &errObj, http.StatusNotFound)
	assertGet(t, ts, path+"/summary", &errObj, http.StatusNotFound)
	assertGet(t, ts, path+"/export", &errObj, http.StatusNotFound)
	assertPost(t, ts, path+"/play", playPayload{Values: []int{1}}, &errObj, http.StatusNotFound)
	assertPost(t, ts, path+"/abandon", "", &errObj, http.StatusNotFound)

	assertGet(t, ts, "/game/not-a-uuid", &errObj, http.StatusNotFound)
	a.Equal("Not Found", errObj.Message)
}
