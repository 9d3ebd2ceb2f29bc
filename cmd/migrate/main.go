package main

import (
	"errors"
	"flag"
	"time"

	"diamond-server/internal/config"
	"diamond-server/pkg/archive"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

var wait = flag.Duration("wait", time.Second*10, "how long to wait for the database")

func main() {
	flag.Parse()
	cfg := config.Instance()

	if cfg.Archive.Driver == "" {
		logrus.Fatal("no archive driver configured")
	}

	a := waitForDB(cfg)
	defer a.Close()

	if err := a.Migrate(cfg.Archive.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not migrate")
	}

	logrus.Info("archive is up to date")
}

func waitForDB(cfg config.Config) *archive.Archive {
	timeout := time.NewTimer(*wait)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			a, err := archive.Open(logrus.StandardLogger(), cfg.Archive.Driver, cfg.Archive.DSN)
			if err == nil {
				return a
			}

			if errors.Is(err, archive.ErrUnknownDriver) {
				logrus.WithError(err).Fatal("could not open archive")
			}

			logrus.WithError(err).Debug("waiting for database")
			time.Sleep(time.Millisecond * 500)
		}
	}
}
