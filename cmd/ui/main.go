package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/app"
	"github.com/thep200/github-showcase/internal/model"
	"github.com/thep200/github-showcase/internal/ui"
	"github.com/thep200/github-showcase/pkg/db"
	applog "github.com/thep200/github-showcase/pkg/log"
)

func main() {
	port := flag.Int("port", 0, "Port for the API server, defaults to server.port")
	configPath := flag.String("config", "", "Path to config file")
	archive := flag.Bool("archive", false, "Serve cards stored by the consumer from MySQL")
	flag.Parse()

	ctx := context.Background()
	loader := cfg.NewViperLoader(*configPath)
	config, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := applog.NewCslLogger()
	logger.SetDebug(config.App.Debug)
	loader.RegisterConfigChangeCallback(func(c *cfg.Config) {
		logger.SetDebug(c.App.Debug)
	})

	a, err := app.New(logger, config)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}
	defer a.Close()

	var cards ui.CardArchive
	if *archive {
		mysql := db.NewMysql(config)
		a.OnClose(mysql.Close)
		repoCard := model.NewRepoCard(config, logger, mysql)
		if err := mysql.Migrate(repoCard); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		cards = repoCard
	}

	server, err := ui.NewServer(logger, config, a.Showcase, cards, *port)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Error(ctx, "Server failed to start: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error(ctx, "Error during server shutdown: %v", err)
	}
	logger.Info(ctx, "Server shut down gracefully")
}
