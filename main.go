package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"staticserver/accesslog"
	"staticserver/config"
	"staticserver/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Load config error: %v", err)
	}

	recorder, err := newRecorder(cfg)
	if err != nil {
		log.Fatalf("Init access log error: %v", err)
	}
	defer recorder.Close()

	srv := server.New(cfg, recorder)
	if err := srv.Start(); err != nil {
		log.Fatalf("Start server error: %v", err)
	}

	color.Green("Serving %s at http://%s", cfg.StaticRoot, srv.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func newRecorder(cfg config.Config) (accesslog.Recorder, error) {
	if cfg.DatabaseURL == "" {
		return accesslog.NopRecorder{}, nil
	}
	return accesslog.NewPostgresRecorder(cfg.DatabaseURL)
}
