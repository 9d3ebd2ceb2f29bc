package room

import (
	"fmt"
	"sync"
	"time"

	"diamond-server/pkg/deck"
	"diamond-server/pkg/diamond"

	"github.com/sirupsen/logrus"
)

// Dealer owns a single game
// The game is only ever touched while the dealer's lock is held
type Dealer struct {
	pitBoss *PitBoss
	logger  logrus.FieldLogger
	game    *diamond.Game
	lock    sync.Mutex

	clients     map[*Client]bool
	clientsLock sync.RWMutex

	endedAt time.Time
}

func newDealer(pitBoss *PitBoss, game *diamond.Game) *Dealer {
	return &Dealer{
		pitBoss: pitBoss,
		logger:  pitBoss.logger.WithField("game", game.ID()),
		game:    game,
		clients: make(map[*Client]bool),
	}
}

// ID returns the game ID
func (d *Dealer) ID() string {
	return d.game.ID()
}

// EndedAt returns when the game finished or was abandoned
// The zero time is returned while the game is active
func (d *Dealer) EndedAt() time.Time {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.endedAt
}

// Status returns a snapshot of the game
func (d *Dealer) Status() *diamond.Status {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.game.Status()
}

// Summary returns the game summary
func (d *Dealer) Summary() *diamond.Summary {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.game.Summary()
}

// CurrentPrize returns the prize card for the upcoming round
func (d *Dealer) CurrentPrize() (deck.Card, bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.game.CurrentPrize()
}

// PlayRound plays the next round
// Events and broadcasts are queued before the lock is released so they leave in round order
func (d *Dealer) PlayRound(choices []int) (diamond.RoundResult, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	result, err := d.game.PlayRound(choices)
	if err != nil {
		return diamond.RoundResult{}, err
	}

	id := d.game.ID()
	d.pitBoss.publish(func(o Observer) {
		o.RoundPlayed(id, result)
	})

	d.broadcast(newResponse("round", result, ""))
	d.broadcast(newResponse("status", d.game.Status(), ""))

	if !d.game.IsActive() {
		d.endedAt = d.pitBoss.now()
		d.gameEnded(d.game.Summary())
	}

	return result, nil
}

// Abandon ends the game early
// Abandoning a game that has already ended changes nothing
func (d *Dealer) Abandon() *diamond.Status {
	d.lock.Lock()
	defer d.lock.Unlock()

	wasActive := d.game.IsActive()
	d.game.Abandon()
	status := d.game.Status()
	if wasActive {
		d.endedAt = d.pitBoss.now()
		d.broadcast(newResponse("status", status, ""))
		d.gameEnded(d.game.Summary())
	}

	return status
}

// NOTE: must be called with the dealer's lock held
func (d *Dealer) gameEnded(summary *diamond.Summary) {
	d.logger.WithField("state", summary.State).Info("game ended")
	d.pitBoss.publish(func(o Observer) {
		o.GameEnded(summary)
	})

	d.broadcast(newResponse("gameEnded", summary, ""))
}

// AddClient attaches a websocket client to the game and sends it the current status
func (d *Dealer) AddClient(client *Client) {
	d.clientsLock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.clientsLock.Unlock()

	client.Send(newResponse("status", d.Status(), ""))
}

// RemoveClient detaches a websocket client
func (d *Dealer) RemoveClient(client *Client) {
	d.clientsLock.Lock()
	delete(d.clients, client)
	d.clientsLock.Unlock()
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.clientsLock.RLock()
	defer d.clientsLock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

func (d *Dealer) broadcast(msg *Response) {
	for _, client := range d.Clients() {
		if !client.Send(msg) {
			d.logger.WithField("client", client.String()).Warn("client buffer is full, dropping message")
		}
	}
}

func (d *Dealer) closeClients(reason string) {
	for _, client := range d.Clients() {
		select {
		case client.Close <- reason:
		default:
		}
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *Message) {
	switch msg.Action {
	case "play":
		if _, err := d.PlayRound(msg.Values); err != nil {
			d.logger.WithError(err).WithField("client", c.String()).Debug("could not play round")
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(&Response{Key: "status", Value: "OK", Context: msg.Context})
	case "status":
		c.Send(newResponse("status", d.Status(), msg.Context))
	case "summary":
		c.Send(newResponse("summary", d.Summary(), msg.Context))
	case "abandon":
		c.Send(newResponse("status", d.Abandon(), msg.Context))
	default:
		c.Send(newErrorResponse(msg.Context, fmt.Errorf("unknown action: %s", msg.Action)))
	}
}
