package main

import (
	"context"
	"net/http"
	"time"

	"voice-arcade/internal/config"
	"voice-arcade/internal/ledger"
	"voice-arcade/internal/logging"
	"voice-arcade/internal/store"
	httptransport "voice-arcade/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("load server config failed")
	}

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	houseID, err := st.EnsureHouseAccount(context.Background(), cfg.HouseUsername)
	if err != nil {
		log.Fatal().Err(err).Msg("ensure house account failed")
	}
	log.Info().Str("house_id", houseID).Str("username", cfg.HouseUsername).Msg("house account ready")

	led := ledger.New(st, houseID)
	r := httptransport.NewRouter(st, led, cfg)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
