package diamond

import (
	"fmt"
	"strings"
)

// Tier is a bot's difficulty
type Tier int

// Tier constants
const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	TierExpert
)

// Tiers returns every tier from easiest to hardest
func Tiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard, TierExpert}
}

// String returns the level name of the tier
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	case TierExpert:
		return "expert"
	}

	panic(fmt.Sprintf("unknown tier: %d", t))
}

// Strategy returns the name of the strategy the tier plays
func (t Tier) Strategy() string {
	switch t {
	case TierEasy:
		return "random"
	case TierMedium:
		return "matching"
	case TierHard:
		return "greedy"
	case TierExpert:
		return "smart"
	}

	panic(fmt.Sprintf("unknown tier: %d", t))
}

// IsValid returns true for the four known tiers
func (t Tier) IsValid() bool {
	return t >= TierEasy && t <= TierExpert
}

// TierFromString accepts a level name or the name of the strategy it plays
func TierFromString(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "random":
		return TierEasy, nil
	case "medium", "matching":
		return TierMedium, nil
	case "hard", "greedy", "conservative":
		return TierHard, nil
	case "expert", "smart":
		return TierExpert, nil
	}

	return -1, fmt.Errorf("unknown tier: %s", s)
}

// MarshalText encodes the tier by name
func (t Tier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("unknown tier: %d", t)
	}

	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier by level or strategy name
func (t *Tier) UnmarshalText(text []byte) error {
	tier, err := TierFromString(string(text))
	if err != nil {
		return err
	}

	*t = tier
	return nil
}
