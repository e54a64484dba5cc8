package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scrabblesrv/internal/config"
	"scrabblesrv/internal/coordinator"
	"scrabblesrv/internal/dictionary"
	"scrabblesrv/internal/game"
	"scrabblesrv/internal/registry"
	"scrabblesrv/internal/timers"
	"scrabblesrv/internal/transport"
)

func main() {
	cfg := config.Load()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	dict := dictionary.Load(resolveWordListPath(cfg.WordListPath))

	// Two independently seeded sources: registry.RandomCodeGenerator is
	// called from whatever connection goroutine handles createRoom, with no
	// room lock involved, while the lifecycle's rng is only ever touched
	// under a room's own mutex. A *rand.Rand is not safe for concurrent use,
	// so these must not share one source.
	registryRand := rand.New(rand.NewSource(cryptoSeed()))
	gameRand := rand.New(rand.NewSource(cryptoSeed()))
	idGen := uuid.NewString

	gameCfg := game.Config{
		Language:              cfg.Language,
		TurnDuration:          cfg.TurnDuration,
		MaxConsecutivePasses:  cfg.MaxConsecutivePasses,
		ExchangeCountsAsStall: cfg.ExchangeCountsAsStall,
	}
	lifecycle := game.NewLifecycle(gameCfg, dict, idGen, gameRand)

	reg := registry.New(registry.RandomCodeGenerator(registryRand))
	coord := coordinator.New(reg, lifecycle, dict, idGen, gameRand)
	srv := transport.New(coord, cfg.AllowedOrigin)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go timers.Run(ctx, reg, coord, timers.Config{
		TickInterval:  cfg.TickInterval,
		SweepInterval: cfg.SweepInterval,
		IdleThreshold: cfg.IdleThreshold,
	})

	httpServer := &http.Server{Addr: ":" + cfg.Port, Handler: srv.Router()}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("scrabble server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
}

// resolveWordListPath falls back to a couple of conventional locations
// when the configured path is empty; dictionary.Load itself falls back
// further to a permissive stub if nothing can be opened.
func resolveWordListPath(configured string) string {
	if configured != "" {
		return configured
	}
	for _, candidate := range []string{"words.txt", "wordlist.txt", "data/words.txt"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return "words.txt"
}

// cryptoSeed seeds the process PRNG from the OS entropy source via
// uuid.New's internal randomness, giving unpredictable games without
// pulling in a separate crypto/rand call site.
func cryptoSeed() int64 {
	id := uuid.New()
	var seed int64
	for _, b := range id[:8] {
		seed = seed<<8 | int64(b)
	}
	if seed < 0 {
		seed = -seed
	}
	return seed
}
