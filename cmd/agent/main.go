package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loopdeck/loopdeck-agent/internal/api"
	"github.com/loopdeck/loopdeck-agent/internal/config"
	"github.com/loopdeck/loopdeck-agent/internal/db"
	"github.com/loopdeck/loopdeck-agent/internal/export"
	"github.com/loopdeck/loopdeck-agent/internal/logging"
	"github.com/loopdeck/loopdeck-agent/internal/metrics"
	"github.com/loopdeck/loopdeck-agent/internal/player"
	"github.com/loopdeck/loopdeck-agent/internal/session"
	"github.com/loopdeck/loopdeck-agent/internal/ui"
	"github.com/loopdeck/loopdeck-agent/internal/video"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting loopdeck agent", "version", config.Version, "data_dir", cfg.DataDir())

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := session.NewRepository(database.Conn())

	deviceID, err := ensureDeviceID(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure device ID: %w", err)
	}

	authToken, err := ensureAuthToken(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Printf("║                  LOOPDECK AGENT v%-8s                 ║\n", config.Version)
	fmt.Println("╠═══════════════════════════════════════════════════════════╣")
	fmt.Printf("║  API URL:    http://127.0.0.1:%-27d ║\n", cfg.Port())
	fmt.Printf("║  Auth Token: %-45s ║\n", authToken)
	fmt.Printf("║  Device ID:  %-45s ║\n", deviceID[:16]+"...")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	m := metrics.New()

	sim := player.NewSimPlayer()
	loader := video.NewYouTubeLoader(logger)

	// The controller and the synchronizer point at each other; the events
	// close over the controller variable assigned just below, and nothing
	// fires before the reactor starts.
	var controller *session.Controller

	synchronizer := player.NewSynchronizer(player.SynchronizerConfig{
		Player:       sim,
		Loader:       loader,
		PollInterval: cfg.PollInterval(),
		Logger:       logger,
		Events: player.Events{
			OnReady: func(media player.Media) {
				sim.SetDuration(media.Duration)
				controller.HandleReady(media)
			},
			OnTime: func(current, duration float64) {
				controller.HandleTime(current, duration)
			},
			OnLoopSeek: func(start float64) {
				m.IncLoopSeeks()
			},
		},
	})

	controller = session.NewController(session.ControllerConfig{
		Logger:  logger,
		Control: synchronizer,
		Repo:    repo,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go synchronizer.Run(ctx)

	if stored, err := repo.LatestSession(ctx); err != nil {
		logger.Warn("failed to read stored session", "error", err)
	} else if stored != nil {
		if err := controller.Restore(ctx, stored); err != nil {
			logger.Warn("failed to restore session", "session_id", stored.ID, "error", err)
		}
	}

	exporter := export.NewService(cfg.ExportDir(), logger)

	apiServer := api.NewServer(api.ServerConfig{
		Port:       cfg.Port(),
		Controller: controller,
		Repository: repo,
		Exporter:   exporter,
		Metrics:    m,
		Logger:     logger,
		StartTime:  startTime,
		DeviceID:   deviceID,
		Version:    config.Version,
	})

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	quitCh := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			close(quitCh)
		case <-quitCh:
		}
	}()

	if cfg.Headless() {
		logger.Info("running in headless mode (no system tray)")
	} else {
		tray := ui.NewTray(ui.TrayConfig{
			Controller: controller,
			Logger:     logger,
			OnQuit: func() {
				close(quitCh)
			},
		})
		go tray.Run()
	}

	<-quitCh

	logger.Info("initiating graceful shutdown")
	synchronizer.Close()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func ensureDeviceID(repo session.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "device_id")
	if err == nil && existing != "" {
		return existing, nil
	}

	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return "", err
	}
	deviceID := hex.EncodeToString(idBytes)

	if err := repo.SetConfig(ctx, "device_id", deviceID); err != nil {
		return "", err
	}

	return deviceID, nil
}

func ensureAuthToken(repo session.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "auth_token")
	if err == nil && existing != "" {
		return existing, nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := repo.SetConfig(ctx, "auth_token", token); err != nil {
		return "", err
	}

	return token, nil
}
