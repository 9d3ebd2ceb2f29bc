package diamond

import (
	"errors"
	"fmt"

	"diamond-server/pkg/deck"
)

// ErrInvalidMove is returned when a requested play does not match a held card,
// or the wrong number of choices was supplied
var ErrInvalidMove = errors.New("invalid move")

// ErrGameOver is an error when a round is attempted on a finished or abandoned game
var ErrGameOver = errors.New("game is over")

// ErrEngineFault is an internal invariant violation; a correctly driven game never returns it
var ErrEngineFault = errors.New("engine fault")

// ErrInvalidOptions is returned by NewGame when the participant configuration is unusable
var ErrInvalidOptions = errors.New("invalid game options")

// MoveErrorKind distinguishes the ways a round can be rejected
type MoveErrorKind string

// MoveErrorKind constants
const (
	MoveWrongCount MoveErrorKind = "wrong-count"
	MoveNotHeld    MoveErrorKind = "not-held"
)

// MoveError is an ErrInvalidMove with details
type MoveError struct {
	Kind          MoveErrorKind
	ParticipantID string
	Name          string
	Suit          deck.Suit
	Rank          int
	Want          int
	Got           int
}

func (m *MoveError) Error() string {
	switch m.Kind {
	case MoveWrongCount:
		return fmt.Sprintf("expected %d card choice(s), got %d", m.Want, m.Got)
	case MoveNotHeld:
		who := m.Name
		if who == "" {
			who = "player"
		}

		if m.Suit.IsValid() {
			return fmt.Sprintf("%s does not have %d %s available", who, m.Rank, m.Suit.Symbol())
		}

		return fmt.Sprintf("%s does not have %d available", who, m.Rank)
	}

	return ErrInvalidMove.Error()
}

// Unwrap allows errors.Is(err, ErrInvalidMove)
func (m *MoveError) Unwrap() error {
	return ErrInvalidMove
}

func engineFault(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrEngineFault, fmt.Sprintf(format, a...))
}
