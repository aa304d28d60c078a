package main

import (
	"log"

	"github.com/existflow/ironstore/internal/config"
	"github.com/existflow/ironstore/internal/logger"
	"github.com/existflow/ironstore/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = cfg.LogConsole
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
	}()

	log.Printf("IronStore server starting on %s", cfg.Addr)
	logger.Info("server starting", logger.F("addr", cfg.Addr))
	if err := srv.Start(cfg.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
