package room

import "diamond-server/pkg/diamond"

// Observer is told about game progress
// Calls happen on the PitBoss run loop, never while a game is locked
type Observer interface {
	RoundPlayed(gameID string, result diamond.RoundResult)
	GameEnded(summary *diamond.Summary)
}
