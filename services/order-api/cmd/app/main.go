package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"order-demo/services/order-api/internal/app"
	"order-demo/shared/pkg/config"
	"order-demo/shared/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.NewWithWriter(os.Stdout, cfg.Common.ServiceName, cfg.Common.LogLevel, cfg.Common.LogFormat)

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		log.Info().Str("signal", s.String()).Msg("signal received")
		cancel()
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Bool("admin", cfg.Admin.Enabled).Bool("announcements", cfg.AnnouncementsEnabled()).Msg("order-api started")
	if err := a.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("order-api stopped")
	}
	log.Info().Msg("order-api stopped")
}
