package main

import (
	"context"
	"log"

	"github.com/devbridge-hq/devbridge-backend/config"
	"github.com/devbridge-hq/devbridge-backend/internal/backends/githubrepo"
	"github.com/devbridge-hq/devbridge-backend/internal/backends/inference"
	"github.com/devbridge-hq/devbridge-backend/internal/backends/jira"
	"github.com/devbridge-hq/devbridge-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	generator, err := inference.NewClient(context.Background(), cfg.AWS)
	if err != nil {
		log.Fatalf("inference client: %v", err)
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "devbridge-backend",
		Version:     cfg.App.Version,
		Tickets:     jira.NewClient(cfg.Jira),
		Repos:       githubrepo.NewClient(cfg.GitHub),
		Generator:   generator,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
