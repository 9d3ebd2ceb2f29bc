package room

import (
	"errors"
	"sync"
	"testing"

	"diamond-server/internal/rng"
	"diamond-server/pkg/diamond"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) *Response {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		res, ok := msg.(*Response)
		require.True(t, ok)
		return res
	default:
		t.Fatal("expected a message")
		return nil
	}
}

func TestDealer_ReceivedMessage(t *testing.T) {
	a := assert.New(t)

	p := NewPitBoss(logrus.StandardLogger(), Options{})
	opts := diamond.DefaultOptions()
	opts.Generator = rng.NewSeeded(5)
	d, err := p.Create(opts)
	require.NoError(t, err)

	c := NewClient(nil, "127.0.0.1")
	a.Equal("127.0.0.1", c.String())

	d.AddClient(c)
	a.Equal("127.0.0.1:"+d.ID(), c.String())
	a.Equal(1, len(d.Clients()))

	res := receive(t, c)
	a.Equal("status", res.Key)
	a.Equal(0, res.Data.(*diamond.Status).Round)

	c.ReceivedMessage(&Message{Action: "play", Values: []int{13}, Context: "abc"})
	res = receive(t, c)
	a.Equal("round", res.Key)
	a.Equal(1, res.Data.(diamond.RoundResult).Round)
	res = receive(t, c)
	a.Equal("status", res.Key)
	res = receive(t, c)
	a.Equal("status", res.Key)
	a.Equal("OK", res.Value)
	a.Equal("abc", res.Context)

	c.ReceivedMessage(&Message{Action: "play", Values: []int{13}, Context: "again"})
	res = receive(t, c)
	a.Equal("error", res.Key)
	a.Equal("again", res.Context)
	a.Contains(res.Value, "does not have 13")

	c.ReceivedMessage(&Message{Action: "summary"})
	res = receive(t, c)
	a.Equal("summary", res.Key)
	a.Equal(1, len(res.Data.(*diamond.Summary).Rounds))

	c.ReceivedMessage(&Message{Action: "dance"})
	res = receive(t, c)
	a.Equal("error", res.Key)
	a.Equal("unknown action: dance", res.Value)

	c.ReceivedMessage(&Message{Action: "abandon"})
	res = receive(t, c)
	a.Equal("status", res.Key)
	res = receive(t, c)
	a.Equal("gameEnded", res.Key)
	res = receive(t, c)
	a.Equal("status", res.Key)
	a.Equal(diamond.StateAbandoned, res.Data.(*diamond.Status).State)

	d.RemoveClient(c)
	a.Equal(0, len(d.Clients()))
}

func TestDealer_PlayRound_invalidMove(t *testing.T) {
	a := assert.New(t)

	p := NewPitBoss(logrus.StandardLogger(), Options{})
	d, err := p.Create(diamond.DefaultOptions())
	require.NoError(t, err)

	_, err = d.PlayRound([]int{1, 2})
	a.True(errors.Is(err, diamond.ErrInvalidMove))
	a.Equal(0, d.Status().Round)
	a.True(d.EndedAt().IsZero())

	_, ok := d.CurrentPrize()
	a.True(ok)
}

func TestDealer_PlayRound_broadcastOrder(t *testing.T) {
	a := assert.New(t)

	p := NewPitBoss(logrus.StandardLogger(), Options{})
	d, err := p.Create(botOnly(17))
	require.NoError(t, err)

	c := NewClient(nil, "127.0.0.1")
	d.AddClient(c)
	receive(t, c)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, err := d.PlayRound(nil); err != nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	lastRound := 0
	ended := false
	for len(c.SendChan()) > 0 {
		res := receive(t, c)
		switch res.Key {
		case "round":
			a.False(ended, "round sent after gameEnded")
			round := res.Data.(diamond.RoundResult).Round
			a.Equal(lastRound+1, round)
			lastRound = round
		case "status":
			if ended {
				a.NotEqual(diamond.StateActive, res.Data.(*diamond.Status).State, "active status sent after gameEnded")
			}
		case "gameEnded":
			a.False(ended)
			ended = true
		}
	}

	a.Equal(diamond.RoundsPerGame, lastRound)
	a.True(ended)
}

func TestClient_noDealer(t *testing.T) {
	a := assert.New(t)

	c := NewClient(nil, "x")
	c.ReceivedMessage(&Message{Action: "status", Context: "ctx"})
	res := receive(t, c)
	a.Equal("error", res.Key)
	a.Equal(ErrNotFound.Error(), res.Value)
	a.Equal("ctx", res.Context)
}

func TestClient_Send_full(t *testing.T) {
	c := NewClient(nil, "x")
	for i := 0; i < clientBufferSize; i++ {
		assert.True(t, c.Send(i))
	}

	assert.False(t, c.Send("overflow"))
}
