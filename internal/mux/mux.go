package mux

import (
	"context"
	"net/http"

	"diamond-server/pkg/archive"
	"diamond-server/pkg/diamond"
	"diamond-server/pkg/room"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const uuidPattern = "{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}"

// Archive is the read side of the game archive
type Archive interface {
	Get(ctx context.Context, id string) (*diamond.Summary, error)
	List(ctx context.Context, start int64, rows int) ([]*archive.Record, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	logger  logrus.FieldLogger
	version string
	pitBoss *room.PitBoss
	archive Archive
}

// NewMux returns a new HTTP mux
// archive may be nil, in which case the archive endpoints respond with 404
func NewMux(logger logrus.FieldLogger, version string, pitBoss *room.PitBoss, archive Archive) *Mux {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	this := &Mux{
		Router:  gmux.NewRouter(),
		logger:  logger,
		version: version,
		pitBoss: pitBoss,
		archive: archive,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())

	{
		gr := r.PathPrefix("/game/" + uuidPattern).Subrouter()
		gr.Methods(http.MethodGet).Path("").Handler(this.getGameUUID())
		gr.Methods(http.MethodGet).Path("/score").Handler(this.getGameUUIDScore())
		gr.Methods(http.MethodPost).Path("/play").Handler(this.postGameUUIDPlay())
		gr.Methods(http.MethodGet).Path("/summary").Handler(this.getGameUUIDSummary())
		gr.Methods(http.MethodPost).Path("/abandon").Handler(this.postGameUUIDAbandon())
		gr.Methods(http.MethodGet).Path("/export").Handler(this.getGameUUIDExport())
		gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameUUIDWS())
	}

	r.Methods(http.MethodGet).Path("/archive").Handler(this.getArchive())
	r.Methods(http.MethodGet).Path("/archive/" + uuidPattern).Handler(this.getArchiveUUID())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, nil)
	})

	return this
}
