package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"usersdata/backend/internal/auth"
	"usersdata/backend/internal/config"
	"usersdata/backend/internal/httpapi"
	"usersdata/backend/internal/store"
	"usersdata/backend/internal/store/memory"
	"usersdata/backend/internal/store/postgres"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config (env vars used when empty)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	var st store.Store
	if cfg.DB.DSN != "" {
		// Schema bootstrap and connectivity failures are logged, not fatal:
		// the server boots anyway and surfaces store errors per request.
		if err := postgres.RunMigrations(rootCtx, cfg.DB.DSN); err != nil {
			log.Error().Err(err).Msg("schema bootstrap failed; continuing")
		}

		pg, err := postgres.NewStore(cfg.DB.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid database url")
		}
		defer pg.Close()

		if err := pg.Ping(rootCtx, cfg.DB.ConnectTimeout); err != nil {
			log.Warn().Err(err).Msg("store unreachable at startup; requests will fail until it recovers")
		}

		st = pg
		log.Info().Msg("using postgres store")
	} else {
		st = memory.NewStore()
		log.Info().Msg("using memory store")
	}

	issuer := auth.Issuer{Key: []byte(cfg.Auth.SigningKey), TTL: cfg.Auth.TokenTTL}
	srv := httpapi.NewServer(*cfg, st, issuer, log)

	httpServer := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		Handler:           srv.Handler(),
		ReadTimeout:       cfg.HTTPServer.ReadTimeout,
		WriteTimeout:      cfg.HTTPServer.WriteTimeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPServer.Address).Msg("backend listening")
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutdown requested")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	cancelRoot()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
}
