package mux

import (
	"net/http"

	"diamond-server/pkg/archive"

	gmux "github.com/gorilla/mux"
)

func (m *Mux) getArchive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.archive == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		records, err := m.archive.List(r.Context(), start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, records)
	}
}

func (m *Mux) getArchiveUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.archive == nil {
			writeJSONError(w, http.StatusNotFound, archive.ErrNotFound)
			return
		}

		summary, err := m.archive.Get(r.Context(), gmux.Vars(r)["uuid"])
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
