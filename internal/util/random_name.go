package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Speedy", "Trotting", "Weaving", "Waiving", "Gracious", "Healthy", "Happy", "Funny",
	"Red", "Blue", "Green", "Orange", "Purple", "Fuzzy", "Smiling", "Tall", "Grand", "Ultimate", "Prime",
	"Alpha", "Growling", "Slithering", "Swimming", "Flying", "Jumping", "Running", "Charging", "Shooting", "Bouncing",
	"Bounding", "Leaping",
}

var robots = []string{
	"Robot", "Android", "Automaton", "Droid", "Golem", "Cyborg", "Mainframe", "Calculator", "Abacus", "Circuit",
	"Processor", "Engine", "Gadget", "Widget", "Sprocket", "Gizmo", "Servo", "Drone",
}

var (
	randomMu sync.Mutex
	random   = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
)

// GetRandomName returns a bot name by combining an adjective with a machine
func GetRandomName() string {
	randomMu.Lock()
	defer randomMu.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	robotsIndex := random.Intn(len(robots))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], robots[robotsIndex])
}
