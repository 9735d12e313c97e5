package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jwebster45206/reverie/internal/config"
	"github.com/jwebster45206/reverie/internal/logger"
	"github.com/jwebster45206/reverie/internal/session"
	"github.com/jwebster45206/reverie/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Reverie",
		"environment", cfg.Environment,
		"data_dir", cfg.DataDir)

	campaigns, err := storage.OpenCampaignDB(cfg.CampaignDBPath, log)
	if err != nil {
		log.Error("Failed to open campaign store", "error", err)
		os.Exit(1)
	}
	defer campaigns.Close()

	worldState, err := storage.OpenWorldStateDB(cfg.WorldStatePath, log)
	if err != nil {
		log.Error("Failed to open world state store", "error", err)
		os.Exit(1)
	}
	defer worldState.Close()

	var cache session.Cache
	if cfg.RedisURL != "" {
		snapshots, err := storage.NewSnapshotCache(cfg.RedisURL, storage.DefaultSnapshotTTL, log)
		if err != nil {
			log.Error("Failed to configure session cache", "error", err)
			os.Exit(1)
		}
		defer snapshots.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := snapshots.Ping(pingCtx); err != nil {
			// The cache is an optional fast path; run without it.
			log.Warn("Session cache unavailable", "error", err)
		} else {
			cache = snapshots
		}
		cancel()
	}

	manager := session.NewManager(campaigns, worldState, cache, log, cfg.EventLimit)

	ctx := context.Background()
	saved, err := campaigns.ListCampaigns(ctx)
	if err != nil {
		log.Error("Failed to list campaigns", "error", err)
		os.Exit(1)
	}

	if len(saved) == 0 {
		fmt.Println("No campaigns yet.")
		return
	}

	fmt.Println("Campaigns (most recent first):")
	for _, c := range saved {
		fmt.Printf("  %s  %s  (played %s, last saved %s)\n",
			c.ID, c.Name,
			(time.Duration(c.PlaytimeSeconds) * time.Second).String(),
			c.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	gs, err := manager.Resume(ctx, saved[0].ID)
	if err != nil {
		log.Error("Failed to resume campaign", "campaign_id", saved[0].ID, "error", err)
		os.Exit(1)
	}
	if gs == nil {
		log.Warn("Most recent campaign could not be loaded", "campaign_id", saved[0].ID)
		return
	}

	fmt.Println()
	fmt.Printf("Resumed %q: %s, level %d %s (%s)\n",
		gs.Campaign.Name, gs.Character.Name, gs.Character.Level,
		gs.Character.Class, gs.Character.DangerLevel)
	if gs.Location != nil {
		fmt.Printf("Currently at %s.\n", gs.Location.Name)
	}

	summary, err := worldState.WorldHistorySummary(ctx, 10)
	if err != nil {
		log.Error("Failed to read world history", "error", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println(summary)
}
