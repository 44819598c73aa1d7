// Command telemetry-bot plays synthetic agent sessions against a running
// telemetry server: register, start, stream event batches, end, submit.
package main

import (
	"context"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"game-telemetry/internal/config"
	"game-telemetry/internal/logging"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(logCfg); err != nil {
		panic(err)
	}
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("load bot config failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := newClient(cfg.APIURL)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Sessions; i++ {
		seed := time.Now().UnixNano() + int64(i)
		g.Go(func() error {
			return playSession(gctx, c, cfg, rand.New(rand.NewSource(seed)))
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("bot run failed")
	}
	log.Info().Int("sessions", cfg.Sessions).Msg("bot run complete")
}
