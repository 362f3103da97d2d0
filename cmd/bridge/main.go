package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/arvela/motion-bridge/internal/bridge"
	"github.com/arvela/motion-bridge/internal/config"
	"github.com/arvela/motion-bridge/internal/profile"
	"github.com/arvela/motion-bridge/internal/transport"
	"github.com/arvela/motion-bridge/internal/wsinput"
)

// #region main

func main() {
	configPath := flag.String("config", "bridge.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Open profile store
	store, err := profile.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	// Connect to the tuning service; a failed dial degrades to local-only
	tuner := transport.Dial(cfg.ServiceAddr, cfg.ServiceTimeout())
	defer tuner.Close()

	// Motion feed over websocket
	input := wsinput.NewServer(cfg.MaxPlayers)
	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: input.Handler()}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("motion feed: %v", err)
		}
	}()

	b, err := bridge.New(bridge.Config{
		MaxPlayers:          cfg.MaxPlayers,
		HistorySize:         cfg.HistorySize,
		UpdateInterval:      uint64(cfg.UpdateInterval),
		DifficultyTrendRate: cfg.DifficultyTrendRate,
	}, input, tuner, store)
	if err != nil {
		log.Fatalf("bridge: %v", err)
	}

	fmt.Println("Motion bridge ready.")
	fmt.Printf("  DB: %s | Service: %s | Feed: %s\n", cfg.DBPath, cfg.ServiceAddr, cfg.ListenAddr)
	fmt.Printf("  Tick: %d Hz | Players: %d\n", cfg.TickRate, cfg.MaxPlayers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runLoop(ctx, b, cfg.TickRate)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)

	if err := b.Flush(); err != nil {
		log.Printf("flush: %v", err)
	}
	log.Printf("stopped after %d ticks", b.Tick())
}

// #endregion main

// #region loop

func runLoop(ctx context.Context, b *bridge.Bridge, tickRate int) {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Update(ctx)
		}
	}
}

// #endregion loop
