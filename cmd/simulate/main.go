package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"diamond-server/internal/rng"
	"diamond-server/pkg/deck"
	"diamond-server/pkg/diamond"
	"diamond-server/pkg/export"
	"diamond-server/pkg/room"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

var (
	bot1   = flag.String("bot1", "medium", "level of the first bot (easy, medium, hard, expert)")
	bot2   = flag.String("bot2", "expert", "level of the second bot")
	games  = flag.Int("games", 1, "number of games to play")
	out    = flag.String("out", "diamond_game_summary.csv", "CSV file every game is appended to; empty to skip")
	seed   = flag.Int64("seed", 0, "seed for a reproducible run; zero uses a cryptographic source")
	quiet  = flag.Bool("quiet", false, "only print the totals")
	logLvl = flag.String("log-level", "warn", "log level")
)

type simulation struct {
	tiers   [2]diamond.Tier
	games   int
	gen     rng.Generator
	verbose bool
}

type totals struct {
	wins  map[string]int
	ties  int
	games int
}

func main() {
	flag.Parse()

	level, err := logrus.ParseLevel(*logLvl)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse level")
	}
	logrus.SetLevel(level)

	if *games < 1 {
		logrus.Fatal("games must be at least 1")
	}

	sim := simulation{games: *games, verbose: !*quiet, gen: rng.Crypto{}}
	for i, s := range []string{*bot1, *bot2} {
		if sim.tiers[i], err = diamond.TierFromString(s); err != nil {
			logrus.WithError(err).Fatalf("bad level for bot %d", i+1)
		}
	}

	if *seed != 0 {
		sim.gen = rng.NewSeeded(*seed)
	}

	var csvOut io.Writer = io.Discard
	hasHeader := false
	if *out != "" {
		file, err := os.OpenFile(*out, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			logrus.WithError(err).Fatal("could not open CSV file")
		}
		defer file.Close()

		if info, err := file.Stat(); err == nil && info.Size() > 0 {
			hasHeader = true
		}

		csvOut = file
	}

	t, err := sim.run(os.Stdout, export.NewWriter(csvOut, hasHeader))
	if err != nil {
		logrus.WithError(err).Fatal("simulation failed")
	}

	t.print(os.Stdout, sim.tiers)
	if *out != "" {
		fmt.Printf("Summaries appended to %s\n", *out)
	}
}

func (s simulation) run(w io.Writer, csvWriter *export.Writer) (*totals, error) {
	pitBoss := room.NewPitBoss(logrus.StandardLogger(), room.Options{})
	t := &totals{wins: make(map[string]int)}

	for n := 1; n <= s.games; n++ {
		opts := diamond.Options{
			Bots: []diamond.BotSeat{
				{Name: "Bot 1", Suit: deck.Spades, Tier: s.tiers[0]},
				{Name: "Bot 2", Suit: deck.Clubs, Tier: s.tiers[1]},
			},
			Generator: s.gen,
		}

		dealer, err := pitBoss.Create(opts)
		if err != nil {
			return nil, err
		}

		if s.verbose {
			fmt.Fprintf(w, "\nGame %d created: %s\n", n, dealer.ID())
		}

		for {
			prize, ok := dealer.CurrentPrize()
			if !ok {
				break
			}

			result, err := dealer.PlayRound(nil)
			if err != nil {
				return nil, err
			}

			if s.verbose {
				printRound(w, prize, result, dealer.Status())
			}
		}

		summary := dealer.Summary()
		if err := csvWriter.WriteGame(n, summary); err != nil {
			return nil, err
		}

		t.games++
		if len(summary.Winners) > 1 {
			t.ties++
		} else {
			t.wins[summary.Winners[0]]++
		}

		if s.verbose {
			fmt.Fprintf(w, "Game %d over! Winner: %s\n", n, winnerNames(summary))
		}

		if err := pitBoss.Remove(dealer.ID()); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func printRound(w io.Writer, prize deck.Card, result diamond.RoundResult, status *diamond.Status) {
	plays := make([]string, len(result.Plays))
	for i, p := range result.Plays {
		ps, _ := status.Participant(p.ParticipantID)
		plays[i] = fmt.Sprintf("%s: %s", ps.Name, p.Card)
	}

	winners := make([]string, len(result.Winners))
	for i, id := range result.Winners {
		ps, _ := status.Participant(id)
		winners[i] = fmt.Sprintf("%s (+%d)", ps.Name, result.Awards[id])
	}

	scores := make([]string, len(status.Participants))
	for i, ps := range status.Participants {
		scores[i] = fmt.Sprintf("%s: %d", ps.Name, ps.Score)
	}

	fmt.Fprintf(w, "Diamond: %s | %s\n", prize, strings.Join(plays, " | "))
	fmt.Fprintf(w, "Winner: %s\n", strings.Join(winners, ", "))
	fmt.Fprintf(w, "Scores -> %s\n", strings.Join(scores, " | "))
}

func winnerNames(summary *diamond.Summary) string {
	names := make([]string, len(summary.Winners))
	for i, id := range summary.Winners {
		names[i] = summary.Name(id)
	}

	return strings.Join(names, " & ")
}

func (t *totals) print(w io.Writer, tiers [2]diamond.Tier) {
	fmt.Fprintf(w, "\nTotal games played: %d\n", t.games)
	for i, tier := range tiers {
		fmt.Fprintf(w, "Bot %d (%s): %d wins\n", i+1, tier, t.wins[fmt.Sprintf("bot%d", i+1)])
	}
	fmt.Fprintf(w, "Ties: %d\n", t.ties)
}
