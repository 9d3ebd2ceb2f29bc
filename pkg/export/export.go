// Package export renders finished games as flat CSV
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"diamond-server/pkg/diamond"
)

// ErrNoParticipants is returned for a summary without any score lines
var ErrNoParticipants = errors.New("summary has no participants")

// Writer appends games to a CSV stream
// The header is written before the first game unless the stream already has one
type Writer struct {
	w             *csv.Writer
	headerWritten bool
}

// NewWriter returns a Writer; set hasHeader when appending to a file that already has a header row
func NewWriter(w io.Writer, hasHeader bool) *Writer {
	return &Writer{
		w:             csv.NewWriter(w),
		headerWritten: hasHeader,
	}
}

// WriteGame writes one row per round, followed by the final scores
func (w *Writer) WriteGame(gameNumber int, summary *diamond.Summary) error {
	if len(summary.Scores) == 0 {
		return ErrNoParticipants
	}

	if !w.headerWritten {
		if err := w.w.Write(Header(summary)); err != nil {
			return err
		}

		w.headerWritten = true
	}

	for _, r := range summary.Rounds {
		row := []string{strconv.Itoa(gameNumber)}
		row = append(row, summary.Tiers...)
		row = append(row, strconv.Itoa(r.Round), r.Prize)

		for _, line := range summary.Scores {
			row = append(row, playFor(r, line.ID))
		}

		row = append(row, names(summary, r.Winners), strconv.Itoa(r.Points))
		if err := w.w.Write(row); err != nil {
			return err
		}
	}

	records := [][]string{
		{},
		{"Game Number", strconv.Itoa(gameNumber), "Final Scores"},
	}

	for _, line := range summary.Scores {
		records = append(records, []string{line.Name, strconv.Itoa(line.Score)})
	}

	records = append(records, []string{"Winner", names(summary, summary.Winners)}, []string{})

	if err := w.w.WriteAll(records); err != nil {
		return fmt.Errorf("could not write final scores: %w", err)
	}

	return nil
}

// Header returns the column names for games shaped like summary
func Header(summary *diamond.Summary) []string {
	header := []string{"Game Number"}
	for i := range summary.Tiers {
		header = append(header, fmt.Sprintf("Bot %d Level", i+1))
	}

	header = append(header, "Round", "Diamond")
	for _, line := range summary.Scores {
		header = append(header, seatLabel(line.ID)+" Play")
	}

	return append(header, "Winner", "Points Awarded")
}

// seatLabel turns "bot2" into "Bot 2"
func seatLabel(id string) string {
	for _, prefix := range []string{"player", "bot"} {
		if n := strings.TrimPrefix(id, prefix); n != id {
			return strings.ToUpper(prefix[:1]) + prefix[1:] + " " + n
		}
	}

	return id
}

func playFor(r diamond.RoundSummary, id string) string {
	for _, p := range r.Plays {
		if p.ParticipantID == id {
			return p.Card
		}
	}

	return ""
}

func names(summary *diamond.Summary, ids []string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = summary.Name(id)
	}

	return strings.Join(out, " & ")
}
