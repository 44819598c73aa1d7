package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appgameplay "game-telemetry/internal/app/gameplay"
	appingest "game-telemetry/internal/app/ingest"
	appreplay "game-telemetry/internal/app/replay"
	appsession "game-telemetry/internal/app/session"
	"game-telemetry/internal/blobstore"
	"game-telemetry/internal/config"
	"game-telemetry/internal/ingesttoken"
	"game-telemetry/internal/logging"
	"game-telemetry/internal/store"
	httptransport "game-telemetry/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if initErr := logging.Init(cfg.Log); initErr != nil {
		log.Fatal().Err(initErr).Msg("logging init failed")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	blobs, err := blobstore.Open(ctx, blobConfig(cfg.Server))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Server.BlobDriver).Msg("blob store init failed")
	}
	defer blobs.Close()

	r := httptransport.NewRouter(buildDeps(cfg.Server, st, blobs))
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

// storeAPI is everything the services need from the relational store.
type storeAPI interface {
	httptransport.Pinger
	appsession.Store
	appingest.Store
	appgameplay.Store
	appreplay.Store
}

func buildDeps(cfg config.ServerConfig, st storeAPI, blobs blobstore.Store) httptransport.Deps {
	codec := ingesttoken.NewCodec(cfg.IngestSecret)
	return httptransport.Deps{
		DB:          st,
		Sessions:    appsession.NewService(st, codec, cfg.IngestTokenTTL),
		Ingest:      appingest.NewService(st, codec),
		Gameplay:    appgameplay.NewService(st, appgameplay.NewNicknameSet(cfg.ReservedNicknames...)),
		Replays:     appreplay.NewService(st, blobs, cfg.ReplayURLTTL),
		AdminAPIKey: cfg.AdminAPIKey,
	}
}

func blobConfig(cfg config.ServerConfig) blobstore.Config {
	return blobstore.Config{
		Driver:       cfg.BlobDriver,
		URL:          cfg.BlobURL,
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		Endpoint:     cfg.S3Endpoint,
		UsePathStyle: cfg.S3UsePathStyle,
	}
}
