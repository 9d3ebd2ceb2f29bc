package diamond

import (
	"diamond-server/internal/rng"
)

// highPrizeThreshold is the prize rank at which the expert tier starts contesting
const highPrizeThreshold = 10

// neutralOpponentHigh is the expert tier's guess at the opponent's best card when nothing is known
const neutralOpponentHigh = 10

// ChooseCard returns the rank a bot of the given tier plays against prize.
// remainingPrizes are the prize ranks not yet revealed and opponentRemaining are the ranks
// the bot can see its opponents still hold (nil when nothing is visible).
// The hand is not modified.
func ChooseCard(gen rng.Generator, hand *Hand, tier Tier, prize int, remainingPrizes []int, opponentRemaining []int) (int, error) {
	ranks := hand.Remaining()
	if len(ranks) == 0 {
		return 0, engineFault("strategy invoked with an empty hand")
	}

	switch tier {
	case TierEasy:
		if gen == nil {
			return 0, engineFault("easy tier requires a random source")
		}

		return pickRandom(gen, ranks), nil
	case TierMedium:
		return pickMatching(ranks, prize), nil
	case TierHard:
		return pickAtLeast(ranks, prize), nil
	case TierExpert:
		return pickSmart(ranks, prize, opponentRemaining), nil
	}

	return 0, engineFault("unknown tier %d", tier)
}

func pickRandom(gen rng.Generator, ranks []int) int {
	return ranks[gen.Intn(len(ranks))]
}

// pickAtLeast plays the smallest rank >= prize, else the smallest rank
// ranks must be sorted ascending
func pickAtLeast(ranks []int, prize int) int {
	for _, r := range ranks {
		if r >= prize {
			return r
		}
	}

	return ranks[0]
}

func pickMatching(ranks []int, prize int) int {
	for _, r := range ranks {
		if r == prize {
			return r
		}
	}

	return pickAtLeast(ranks, prize)
}

func pickSmart(ranks []int, prize int, opponentRemaining []int) int {
	// low prizes are not worth a good card
	if prize < highPrizeThreshold {
		return ranks[0]
	}

	opponentHigh := estimateOpponentHigh(opponentRemaining)
	for _, r := range ranks {
		if r > opponentHigh {
			return r
		}
	}

	return pickAtLeast(ranks, prize)
}

func estimateOpponentHigh(known []int) int {
	if len(known) == 0 {
		return neutralOpponentHigh
	}

	high := known[0]
	for _, v := range known[1:] {
		if v > high {
			high = v
		}
	}

	return high
}
