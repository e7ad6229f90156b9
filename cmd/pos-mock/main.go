package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pos-facade/internal/config"
	"github.com/MikeMC777/pos-facade/internal/mockapi"
)

func main() {
	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var st mockapi.Store
	closers := make([]func(), 0, 1)
	if cfg.PostgresDSN != "" {
		pg, err := mockapi.OpenPGStore(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		st = pg
		closers = append(closers, pg.Close)
		log.Println("[mock] store: postgres")
	} else {
		st = mockapi.NewMemoryStore()
		log.Println("[mock] store: in-memory")
	}

	if cfg.MockSeed {
		seeded, err := mockapi.Seed(ctx, st)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		if seeded {
			log.Println("[mock] seeded demo catalog")
		}
	}

	srv := &http.Server{
		Addr:              cfg.MockAddr,
		Handler:           mockapi.New(st).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("pos-mock listening on %s (swagger at /swagger/index.html)", cfg.MockAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	for _, c := range closers {
		c()
	}
	log.Println("pos-mock stopped")
}
