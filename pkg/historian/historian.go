// Package historian pushes game events onto a redis list for downstream consumers
package historian

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"diamond-server/pkg/diamond"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultQueue is the redis list events are pushed to
const DefaultQueue = "diamond_events"

const pushTimeout = time.Second * 2

// Event types
const (
	EventRound     = "round"
	EventGameEnded = "gameEnded"
)

// Event is one entry on the queue
type Event struct {
	GameID    string      `json:"gameId"`
	Index     int         `json:"index"`
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// pusher is the part of the redis client the historian needs
type pusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Historian publishes round and game-ended events
type Historian struct {
	client pusher
	queue  string
	logger logrus.FieldLogger
	now    func() time.Time
}

// Connect returns a Historian backed by the redis server at addr
func Connect(ctx context.Context, logger logrus.FieldLogger, addr string, db int, queue string) (*Historian, *redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}

	return New(logger, rdb, queue), rdb, nil
}

// New returns a Historian that pushes with client
func New(logger logrus.FieldLogger, client pusher, queue string) *Historian {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if queue == "" {
		queue = DefaultQueue
	}

	return &Historian{
		client: client,
		queue:  queue,
		logger: logger.WithField("queue", queue),
		now:    time.Now,
	}
}

// Publish pushes the event onto the queue
func (h *Historian) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if err := h.client.RPush(ctx, h.queue, data).Err(); err != nil {
		return fmt.Errorf("could not push to %s: %w", h.queue, err)
	}

	return nil
}

// RoundPlayed publishes the round result
func (h *Historian) RoundPlayed(gameID string, result diamond.RoundResult) {
	h.publish(Event{
		GameID:  gameID,
		Index:   result.Round,
		Type:    EventRound,
		Payload: result,
	})
}

// GameEnded publishes the summary
func (h *Historian) GameEnded(summary *diamond.Summary) {
	h.publish(Event{
		GameID:  summary.GameID,
		Index:   summary.Round + 1,
		Type:    EventGameEnded,
		Payload: summary,
	})
}

func (h *Historian) publish(event Event) {
	event.Timestamp = h.now().UnixMilli()

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := h.Publish(ctx, event); err != nil {
		h.logger.WithError(err).WithField("game", event.GameID).Error("could not publish event")
	}
}
