package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"socialbid/internal/config"
	"socialbid/internal/httpserver"
	"socialbid/internal/security"
	"socialbid/internal/store/sqlite"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	if cfg.SeedOnStart {
		seeded, err := sqlite.Seed(context.Background(), db)
		if err != nil {
			logrus.WithError(err).Fatal("failed to seed database")
		}
		if seeded {
			logrus.Info("seeded database with demo fixtures")
		}
	}

	tokenSvc := security.NewTokenService(cfg.JWTSecret, time.Duration(cfg.AccessTokenMinutes)*time.Minute)

	router := httpserver.NewRouter(cfg, db, tokenSvc)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.HTTPAddr()).Infof("starting %s", cfg.AppName)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
