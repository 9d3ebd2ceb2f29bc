package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"diamond-server/internal/rng"
	"diamond-server/pkg/deck"
	"diamond-server/pkg/diamond"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const banner = `
=== Diamond ===
- You play %s, %s plays %s
- Enter a card value (1-13) you still hold.
- Higher card wins the diamond's points; ties split.
`

var (
	level = flag.String("level", "", "bot level (easy, medium, hard, expert); prompted for when empty")
	name  = flag.String("name", "You", "your name")
	seed  = flag.Int64("seed", 0, "seed for a reproducible game; zero uses a cryptographic source")
)

// session runs one game against a bot on a line-based terminal
type session struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func main() {
	flag.Parse()
	logrus.SetLevel(logrus.WarnLevel)

	s := &session{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}

	tier, err := s.tier(*level)
	if err != nil {
		logrus.WithError(err).Fatal("could not get level")
	}

	opts := diamond.Options{
		Humans: []diamond.Seat{{Name: *name}},
		Bots:   []diamond.BotSeat{{Tier: tier}},
	}

	if *seed != 0 {
		opts.Generator = rng.NewSeeded(*seed)
	}

	game, err := diamond.NewGame(logrus.StandardLogger(), opts)
	if err != nil {
		logrus.WithError(err).Fatal("could not create game")
	}

	if err := s.play(game); err != nil {
		if errors.Is(err, io.EOF) {
			game.Abandon()
			fmt.Fprintln(s.out, "\nGame abandoned.")
			s.printSummary(game.Summary())
			return
		}

		logrus.WithError(err).Fatal("game failed")
	}
}

func (s *session) tier(flagValue string) (diamond.Tier, error) {
	if flagValue != "" {
		return diamond.TierFromString(flagValue)
	}

	for {
		answer, err := s.getInput("Choose the bot level [easy|medium|hard|expert] (default=medium)")
		if err != nil {
			return diamond.TierMedium, err
		}

		if answer == "" {
			return diamond.TierMedium, nil
		}

		tier, err := diamond.TierFromString(answer)
		if err == nil {
			return tier, nil
		}

		fmt.Fprintln(s.out, "Please enter one of: easy, medium, hard, expert.")
	}
}

func (s *session) play(game *diamond.Game) error {
	status := game.Status()
	you, bot := status.Participants[0], status.Participants[1]
	fmt.Fprintf(s.out, banner, you.Suit.Symbol(), bot.Name, bot.Suit.Symbol())

	for {
		prize, ok := game.CurrentPrize()
		if !ok {
			break
		}

		status = game.Status()
		fmt.Fprintf(s.out, "\nRound %d - Diamond: %s\n", status.Round+1, prize)
		fmt.Fprintf(s.out, "Your cards: %s\n", joinRanks(status.Participants[0].Remaining))

		result, err := s.playRound(game)
		if err != nil {
			return err
		}

		s.printRound(result, game.Status())
	}

	fmt.Fprintln(s.out, "\nGame over!")
	s.printSummary(game.Summary())
	return nil
}

// playRound prompts until a held card is chosen
func (s *session) playRound(game *diamond.Game) (diamond.RoundResult, error) {
	for {
		answer, err := s.getInput("Play a card")
		if err != nil {
			return diamond.RoundResult{}, err
		}

		rank, err := strconv.Atoi(answer)
		if err != nil || rank < deck.MinRank || rank > deck.MaxRank {
			fmt.Fprintf(s.out, "Please enter an integer between %d and %d.\n", deck.MinRank, deck.MaxRank)
			continue
		}

		result, err := game.PlayRound([]int{rank})
		if errors.Is(err, diamond.ErrInvalidMove) {
			fmt.Fprintf(s.out, "%s\n", err)
			continue
		}

		return result, err
	}
}

func (s *session) printRound(result diamond.RoundResult, status *diamond.Status) {
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

	fmt.Fprintln(s.out, strings.Join(plays, " | "))
	fmt.Fprintf(s.out, "Winner: %s\n", strings.Join(winners, ", "))

	scores := make([]string, len(status.Participants))
	for i, ps := range status.Participants {
		scores[i] = fmt.Sprintf("%s: %d", ps.Name, ps.Score)
	}
	fmt.Fprintf(s.out, "Scores -> %s\n", strings.Join(scores, " | "))
}

func (s *session) printSummary(summary *diamond.Summary) {
	fmt.Fprintln(s.out, "Final scores:")
	for _, line := range summary.Scores {
		fmt.Fprintf(s.out, "  %s: %d\n", line.Name, line.Score)
	}

	names := make([]string, len(summary.Winners))
	for i, id := range summary.Winners {
		names[i] = summary.Name(id)
	}

	if len(names) > 1 {
		fmt.Fprintf(s.out, "It's a tie between %s\n", strings.Join(names, " & "))
		return
	}

	fmt.Fprintf(s.out, "Winner: %s\n", names[0])
}

func (s *session) getInput(question string) (string, error) {
	if s.interactive {
		fmt.Fprintf(s.out, "%s: ", question)
	}

	str, err := s.in.ReadString('\n')
	if err != nil && (str == "" || err != io.EOF) {
		return "", err
	}

	return strings.TrimSpace(str), nil
}

func joinRanks(ranks []int) string {
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = strconv.Itoa(r)
	}

	return strings.Join(out, " ")
}
