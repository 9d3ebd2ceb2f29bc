package room

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"diamond-server/pkg/diamond"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when an ID does not resolve to a live game
var ErrNotFound = errors.New("game not found")

const eventBufferSize = 256

// Options configures a PitBoss
type Options struct {
	// Retention is how long a finished or abandoned game stays queryable; zero keeps it forever
	Retention time.Duration
	// JanitorInterval is how often expired games are swept
	JanitorInterval time.Duration
	// Observers are told about every round and every ended game
	Observers []Observer
}

// PitBoss is the registry of live games
// Every operation on a game goes through its Dealer, so calls for the same game are serialized
// while different games never wait on each other
type PitBoss struct {
	logger    logrus.FieldLogger
	options   Options
	dealers   map[string]*Dealer
	lock      sync.RWMutex
	events    chan func(Observer)
	close     chan bool
	closeOnce sync.Once
	done      chan struct{}
	started   atomic.Bool
	now       func() time.Time
}

// NewPitBoss returns a new registry
// Call StartShift to begin delivering events and sweeping old games
func NewPitBoss(logger logrus.FieldLogger, options Options) *PitBoss {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if options.JanitorInterval <= 0 {
		options.JanitorInterval = time.Minute
	}

	return &PitBoss{
		logger:  logger,
		options: options,
		dealers: make(map[string]*Dealer),
		events:  make(chan func(Observer), eventBufferSize),
		close:   make(chan bool),
		done:    make(chan struct{}),
		now:     time.Now,
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	if p.started.Swap(true) {
		return
	}

	go p.runLoop()
}

// EndShift stops the run loop
// It returns once every queued event has been delivered
func (p *PitBoss) EndShift() {
	p.closeOnce.Do(func() {
		close(p.close)
		if p.started.Load() {
			<-p.done
		}
	})
}

func (p *PitBoss) runLoop() {
	defer close(p.done)

	ticker := time.NewTicker(p.options.JanitorInterval)
	defer ticker.Stop()

	p.logger.Debug("starting pit boss run loop")
	for {
		select {
		case fn := <-p.events:
			p.notify(fn)
		case <-ticker.C:
			if n := p.sweep(); n > 0 {
				p.logger.WithField("removed", n).Info("swept expired games")
			}
		case <-p.close:
			for {
				select {
				case fn := <-p.events:
					p.notify(fn)
				default:
					p.logger.Debug("terminating pit boss run loop")
					return
				}
			}
		}
	}
}

// NOTE: must only be called from the run loop
func (p *PitBoss) notify(fn func(Observer)) {
	for _, o := range p.options.Observers {
		fn(o)
	}
}

// publish queues an event for the observers
// It never blocks a round; if the queue is full the event is dropped
func (p *PitBoss) publish(fn func(Observer)) {
	if len(p.options.Observers) == 0 {
		return
	}

	select {
	case p.events <- fn:
	default:
		p.logger.Warn("event queue is full, dropping event")
	}
}

// Create starts a new game and registers it
func (p *PitBoss) Create(opts diamond.Options) (*Dealer, error) {
	game, err := diamond.NewGame(p.logger, opts)
	if err != nil {
		return nil, err
	}

	d := newDealer(p, game)

	p.lock.Lock()
	p.dealers[game.ID()] = d
	p.lock.Unlock()

	p.logger.WithField("game", game.ID()).Info("game created")
	return d, nil
}

// Get returns the dealer for the game
func (p *PitBoss) Get(id string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	d, ok := p.dealers[id]
	if !ok {
		return nil, ErrNotFound
	}

	return d, nil
}

// Remove forgets a game
func (p *PitBoss) Remove(id string) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	d, ok := p.dealers[id]
	if !ok {
		return ErrNotFound
	}

	delete(p.dealers, id)
	d.closeClients("game removed")
	return nil
}

// Len returns the number of registered games
func (p *PitBoss) Len() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.dealers)
}

// Status returns the status of the game
func (p *PitBoss) Status(id string) (*diamond.Status, error) {
	d, err := p.Get(id)
	if err != nil {
		return nil, err
	}

	return d.Status(), nil
}

// PlayRound plays the next round of the game
func (p *PitBoss) PlayRound(id string, choices []int) (diamond.RoundResult, error) {
	d, err := p.Get(id)
	if err != nil {
		return diamond.RoundResult{}, err
	}

	return d.PlayRound(choices)
}

// Summary returns the summary of the game
func (p *PitBoss) Summary(id string) (*diamond.Summary, error) {
	d, err := p.Get(id)
	if err != nil {
		return nil, err
	}

	return d.Summary(), nil
}

// Abandon ends the game early
func (p *PitBoss) Abandon(id string) (*diamond.Status, error) {
	d, err := p.Get(id)
	if err != nil {
		return nil, err
	}

	return d.Abandon(), nil
}

// sweep removes games that ended more than Retention ago
func (p *PitBoss) sweep() int {
	if p.options.Retention <= 0 {
		return 0
	}

	cutoff := p.now().Add(-p.options.Retention)

	p.lock.Lock()
	defer p.lock.Unlock()

	removed := 0
	for id, d := range p.dealers {
		if ended := d.EndedAt(); !ended.IsZero() && ended.Before(cutoff) {
			delete(p.dealers, id)
			d.closeClients("game expired")
			removed++
		}
	}

	return removed
}
