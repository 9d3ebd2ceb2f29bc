package diamond

import (
	"fmt"

	"diamond-server/internal/rng"
	"diamond-server/internal/util"
	"diamond-server/pkg/deck"
)

// participant limits
const (
	maxHumans = 2
	minBots   = 1
	maxBots   = 2
)

// default suits, in seat order
var (
	defaultHumanSuits = []deck.Suit{deck.Hearts, deck.Diamonds}
	defaultBotSuits   = []deck.Suit{deck.Spades, deck.Clubs}
)

// Seat configures a human participant
type Seat struct {
	Name string    `json:"name" yaml:"name"`
	Suit deck.Suit `json:"suit" yaml:"suit"`
}

// BotSeat configures an automated participant
type BotSeat struct {
	Name string    `json:"name" yaml:"name"`
	Suit deck.Suit `json:"suit" yaml:"suit"`
	Tier Tier      `json:"level" yaml:"level"`
}

// Options contains options for creating a new game of Diamond
type Options struct {
	Humans []Seat
	Bots   []BotSeat

	// Generator shuffles the prize deck and drives the easy tier
	// If nil, rng.Crypto is used
	Generator rng.Generator
}

// DefaultOptions returns one human against a medium bot
func DefaultOptions() Options {
	return Options{
		Humans: []Seat{{Name: "You"}},
		Bots:   []BotSeat{{Name: "Robot", Tier: TierMedium}},
	}
}

// BotOnlyOptions returns a bot-vs-bot game with the given tiers
func BotOnlyOptions(tiers ...Tier) Options {
	bots := make([]BotSeat, len(tiers))
	for i, tier := range tiers {
		bots[i] = BotSeat{Name: fmt.Sprintf("Bot %d", i+1), Tier: tier}
	}

	return Options{Bots: bots}
}

// normalize validates the options and fills in default names and suits
func (o Options) normalize() (Options, error) {
	if len(o.Humans) > maxHumans {
		return o, fmt.Errorf("%w: at most %d human players are allowed, got %d", ErrInvalidOptions, maxHumans, len(o.Humans))
	}

	if len(o.Bots) < minBots || len(o.Bots) > maxBots {
		return o, fmt.Errorf("%w: expected %d-%d bots, got %d", ErrInvalidOptions, minBots, maxBots, len(o.Bots))
	}

	humans := append([]Seat{}, o.Humans...)
	bots := append([]BotSeat{}, o.Bots...)

	used := make(map[deck.Suit]bool)
	claim := func(suit deck.Suit) error {
		if !suit.IsValid() {
			return fmt.Errorf("%w: unknown suit %q", ErrInvalidOptions, string(suit))
		}

		if used[suit] {
			return fmt.Errorf("%w: suit %s is used by more than one participant", ErrInvalidOptions, suit.Symbol())
		}

		used[suit] = true
		return nil
	}

	// explicit suits are claimed first so defaults never collide with them
	for _, h := range humans {
		if h.Suit != "" {
			if err := claim(h.Suit); err != nil {
				return o, err
			}
		}
	}

	for i, b := range bots {
		if !b.Tier.IsValid() {
			return o, fmt.Errorf("%w: bot %d has an unknown level", ErrInvalidOptions, i+1)
		}

		if b.Suit != "" {
			if err := claim(b.Suit); err != nil {
				return o, err
			}
		}
	}

	nextFree := func(preferred []deck.Suit) deck.Suit {
		for _, suit := range append(append([]deck.Suit{}, preferred...), deck.Suits...) {
			if !used[suit] {
				used[suit] = true
				return suit
			}
		}

		// four suits, at most four participants
		return ""
	}

	for i := range humans {
		if humans[i].Suit == "" {
			humans[i].Suit = nextFree(defaultHumanSuits[i:])
		}

		if humans[i].Name == "" {
			humans[i].Name = fmt.Sprintf("Player %d", i+1)
		}
	}

	for i := range bots {
		if bots[i].Suit == "" {
			bots[i].Suit = nextFree(defaultBotSuits[i:])
		}

		if bots[i].Name == "" {
			bots[i].Name = util.GetRandomName()
		}
	}

	o.Humans = humans
	o.Bots = bots
	if o.Generator == nil {
		o.Generator = rng.Crypto{}
	}

	return o, nil
}
