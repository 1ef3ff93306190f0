package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"opname/infrastructure/backend"
	httpserver "opname/infrastructure/http"
	"opname/internal/config"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	api := backend.NewClient(cfg.Backend)

	server := httpserver.NewServer(cfg.Server.Addr, api, cfg.Backend.Operator)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("opname listening on %s, backend %s", cfg.Server.Addr, cfg.Backend.BaseURL)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
