// Package archive stores finished games in a SQL database
package archive

import (
	"context"
	"database/sql"
	_ "embed" // sqlite schema
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"diamond-server/pkg/diamond"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                 // postgres driver
	_ "modernc.org/sqlite"                                // sqlite driver
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const saveTimeout = time.Second * 5

// ErrNotFound is returned when no archived game has the ID
var ErrNotFound = errors.New("archived game not found")

// ErrUnknownDriver is returned by Open for drivers other than postgres and sqlite
var ErrUnknownDriver = errors.New("unknown archive driver")

//go:embed schema_sqlite.sql
var sqliteSchema string

// Scanner is an interface that sql should've provided
type Scanner interface {
	Scan(...interface{}) error
}

// Record is an archived game without its rounds
type Record struct {
	GameID       string        `json:"gameId"`
	State        diamond.State `json:"state"`
	RoundsPlayed int           `json:"roundsPlayed"`
	Winners      []string      `json:"winners"`
	ArchivedAt   time.Time     `json:"archivedAt"`
}

// Archive persists game summaries
// It is an observer of the game registry: every game that ends is saved
type Archive struct {
	db     *sql.DB
	driver string
	logger logrus.FieldLogger
	now    func() time.Time
}

// Open connects to the database
func Open(logger logrus.FieldLogger, driver, dsn string) (*Archive, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open %s archive: %w", driver, err)
	}

	if driver == DriverSQLite {
		// an in-memory database only exists on its connection
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not connect to %s archive: %w", driver, err)
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Archive{
		db:     db,
		driver: driver,
		logger: logger.WithField("archive", driver),
		now:    time.Now,
	}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	return a.db.Close()
}

// Migrate brings the schema up to date
// Postgres runs the migrations in migrationsPath; sqlite uses the embedded schema
func (a *Archive) Migrate(migrationsPath string) error {
	if a.driver == DriverSQLite {
		if _, err := a.db.Exec(sqliteSchema); err != nil {
			return fmt.Errorf("could not create sqlite schema: %w", err)
		}

		return nil
	}

	a.logger.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(a.db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// Save stores the summary
// Saving the same game twice keeps the first copy
func (a *Archive) Save(ctx context.Context, summary *diamond.Summary) error {
	body, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	query := a.rebind(`
INSERT INTO games (id, state, rounds_played, winners, summary, archived_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`)

	_, err = a.db.ExecContext(ctx, query,
		summary.GameID,
		string(summary.State),
		summary.Round,
		strings.Join(summary.Winners, ","),
		string(body),
		a.now().UnixMilli(),
	)

	if err != nil {
		return fmt.Errorf("could not archive game %s: %w", summary.GameID, err)
	}

	return nil
}

// Get returns the archived summary
func (a *Archive) Get(ctx context.Context, id string) (*diamond.Summary, error) {
	row := a.db.QueryRowContext(ctx, a.rebind(`SELECT summary FROM games WHERE id = ?`), id)

	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	var summary diamond.Summary
	if err := json.Unmarshal([]byte(body), &summary); err != nil {
		return nil, fmt.Errorf("could not decode archived game %s: %w", id, err)
	}

	return &summary, nil
}

// List returns archived games, most recent first
func (a *Archive) List(ctx context.Context, start int64, rows int) ([]*Record, error) {
	query := a.rebind(`
SELECT id, state, rounds_played, winners, archived_at
FROM games
ORDER BY archived_at DESC, id
LIMIT ? OFFSET ?`)

	res, err := a.db.QueryContext(ctx, query, rows, start)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	records := make([]*Record, 0, rows)
	for res.Next() {
		record, err := scanRecord(res)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, res.Err()
}

func scanRecord(row Scanner) (*Record, error) {
	var record Record
	var state, winners string
	var archivedAt int64
	if err := row.Scan(&record.GameID, &state, &record.RoundsPlayed, &winners, &archivedAt); err != nil {
		return nil, err
	}

	record.State = diamond.State(state)
	record.ArchivedAt = time.UnixMilli(archivedAt).UTC()
	record.Winners = []string{}
	if winners != "" {
		record.Winners = strings.Split(winners, ",")
	}

	return &record, nil
}

// RoundPlayed does nothing; only finished games are archived
func (a *Archive) RoundPlayed(string, diamond.RoundResult) {}

// GameEnded saves the summary
func (a *Archive) GameEnded(summary *diamond.Summary) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := a.Save(ctx, summary); err != nil {
		a.logger.WithError(err).Error("could not archive game")
		return
	}

	a.logger.WithField("game", summary.GameID).Debug("archived game")
}

// rebind turns ? placeholders into $N for postgres
func (a *Archive) rebind(query string) string {
	if a.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
