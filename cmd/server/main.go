package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"diamond-server/internal/config"
	"diamond-server/internal/mux"
	"diamond-server/pkg/archive"
	"diamond-server/pkg/historian"
	"diamond-server/pkg/room"

	"github.com/gorilla/handlers"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (overrides the configuration)")

func main() {
	flag.Parse()
	cfg := config.Instance()
	setupLogger(cfg)

	var observers []room.Observer
	var arch mux.Archive

	if cfg.Archive.Driver != "" {
		a, err := archive.Open(logrus.StandardLogger(), cfg.Archive.Driver, cfg.Archive.DSN)
		if err != nil {
			logrus.WithError(err).Fatal("could not open archive")
		}
		defer a.Close()

		if err := a.Migrate(cfg.Archive.MigrationsPath); err != nil {
			logrus.WithError(err).Fatal("could not migrate archive")
		}

		observers = append(observers, a)
		arch = a
	}

	if cfg.Redis.Addr != "" {
		h, rdb, err := historian.Connect(context.Background(), logrus.StandardLogger(), cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Queue)
		if err != nil {
			logrus.WithError(err).Fatal("could not connect historian")
		}
		defer rdb.Close()

		observers = append(observers, h)
	}

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), room.Options{
		Retention:       cfg.GameRetention,
		JanitorInterval: cfg.JanitorInterval,
		Observers:       observers,
	})
	pitBoss.StartShift()
	defer pitBoss.EndShift()

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listen := cfg.Addr
	if *addr != "" {
		listen = *addr
	}

	srv := &http.Server{
		Addr:         listen,
		Handler:      loggingHandler(cfg, c.Handler(mux.NewMux(logrus.StandardLogger(), Version, pitBoss, arch))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("could not listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("could not shut down cleanly")
	}
}

func loggingHandler(cfg config.Config, next http.Handler) http.Handler {
	if cfg.Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger(cfg config.Config) {
	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
