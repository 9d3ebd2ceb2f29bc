package mux

import (
	"bytes"
	"fmt"
	"net/http"

	"diamond-server/pkg/deck"
	"diamond-server/pkg/diamond"
	"diamond-server/pkg/export"
	"diamond-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type seatPayload struct {
	Name string `json:"name"`
	Suit string `json:"suit"`
}

type botSeatPayload struct {
	Name  string        `json:"name"`
	Suit  string        `json:"suit"`
	Level *diamond.Tier `json:"level"`
}

type postGamePayload struct {
	Humans []seatPayload    `json:"humans"`
	Bots   []botSeatPayload `json:"bots"`
}

// options turns the payload into game options
// An empty payload is one human against a medium bot
func (p postGamePayload) options() (diamond.Options, error) {
	if len(p.Humans) == 0 && len(p.Bots) == 0 {
		return diamond.DefaultOptions(), nil
	}

	var opts diamond.Options
	for _, h := range p.Humans {
		suit, err := optionalSuit(h.Suit)
		if err != nil {
			return opts, err
		}

		opts.Humans = append(opts.Humans, diamond.Seat{Name: h.Name, Suit: suit})
	}

	for _, b := range p.Bots {
		suit, err := optionalSuit(b.Suit)
		if err != nil {
			return opts, err
		}

		tier := diamond.TierMedium
		if b.Level != nil {
			tier = *b.Level
		}

		opts.Bots = append(opts.Bots, diamond.BotSeat{Name: b.Name, Suit: suit, Tier: tier})
	}

	return opts, nil
}

func optionalSuit(s string) (deck.Suit, error) {
	if s == "" {
		return "", nil
	}

	suit, err := deck.SuitFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", diamond.ErrInvalidOptions, err.Error())
	}

	return suit, nil
}

type postGameResponse struct {
	GameID string          `json:"gameId"`
	Status *diamond.Status `json:"status"`
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGamePayload
		if r.ContentLength != 0 {
			if !decodeRequest(w, r, &payload) {
				return
			}
		}

		opts, err := payload.options()
		if err != nil {
			writeGameError(w, err)
			return
		}

		dealer, err := m.pitBoss.Create(opts)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, postGameResponse{
			GameID: dealer.ID(),
			Status: dealer.Status(),
		})
	}
}

// withDealer resolves the {uuid} route variable
func (m *Mux) withDealer(fn func(w http.ResponseWriter, r *http.Request, dealer *room.Dealer)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer, err := m.pitBoss.Get(gmux.Vars(r)["uuid"])
		if err != nil {
			writeGameError(w, err)
			return
		}

		fn(w, r, dealer)
	}
}

func (m *Mux) getGameUUID() http.HandlerFunc {
	return m.withDealer(func(w http.ResponseWriter, r *http.Request, dealer *room.Dealer) {
		writeJSON(w, http.StatusOK, dealer.Status())
	})
}

type scoreResponse struct {
	GameID string         `json:"gameId"`
	Scores map[string]int `json:"scores"`
	Round  int            `json:"round"`
	Active bool           `json:"active"`
}

func (m *Mux) getGameUUIDScore() http.HandlerFunc {
	return m.withDealer(func(w http.ResponseWriter, r *http.Request, dealer *room.Dealer) {
		status := dealer.Status()
		writeJSON(w, http.StatusOK, scoreResponse{
			GameID: status.GameID,
			Scores: status.Scores(),
			Round:  status.Round,
			Active: status.Active,
		})
	})
}

type playPayload struct {
	Values []int `json:"values"`
}

type playResponse struct {
	Result diamond.RoundResult `json:"result"`
	Status *diamond.Status     `json:"status"`
}

func (m *Mux) postGameUUIDPlay() http.HandlerFunc {
	return m.withDealer(func(w http.ResponseWriter, r *http.Request, dealer *room.Dealer) {
		var payload playPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		result, err := dealer.PlayRound(payload.Values)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, playResponse{
			Result: result,
			Status: dealer.Status(),
		})
	})
}

func (m *Mux) getGameUUIDSummary() http.HandlerFunc {
	return m.withDealer(func(w http.ResponseWriter, r *http.Request, dealer *room.Dealer) {
		writeJSON(w, http.StatusOK, dealer.Summary())
	})
}

type abandonResponse struct {
	GameID string        `json:"gameId"`
	State  diamond.State `json:"state"`
	Active bool          `json:"active"`
}

func (m *Mux) postGameUUIDAbandon() http.HandlerFunc {
	return m.withDealer(func(w http.ResponseWriter, r *http.Request, dealer *room.Dealer) {
		status := dealer.Abandon()
		writeJSON(w, http.StatusOK, abandonResponse{
			GameID: status.GameID,
			State:  status.State,
			Active: status.Active,
		})
	})
}

func (m *Mux) getGameUUIDExport() http.HandlerFunc {
	return m.withDealer(func(w http.ResponseWriter, r *http.Request, dealer *room.Dealer) {
		buf := &bytes.Buffer{}
		if err := export.NewWriter(buf, false).WriteGame(1, dealer.Summary()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"diamond-%s.csv\"", dealer.ID()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	})
}
