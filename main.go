package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo-frame/domain/repository"
	"photo-frame/infrastructure/cache"
	"photo-frame/infrastructure/clients/googlephotos"
	"photo-frame/infrastructure/configuration"
	"photo-frame/infrastructure/display"
	"photo-frame/infrastructure/logger"
	"photo-frame/infrastructure/network"
	"photo-frame/infrastructure/persistence"
	"photo-frame/infrastructure/realtime"
	httpHandler "photo-frame/interfaces/http"
	"photo-frame/server"
	"photo-frame/usecase"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	cfg := configuration.C
	port := cfg.App.Port

	hostIP := network.ResolveHostIP()
	configURL := fmt.Sprintf("http://%s:%d", hostIP, port)
	redirectURL := configURL + "/oauth2callback"
	logger.GetLogger().WithFields(map[string]interface{}{
		"configURL":   configURL,
		"redirectURL": redirectURL,
	}).Info("Resolved frame address")

	adapter := display.NewAdapter(detectPanel(cfg.Display), display.Options{
		QRMargin:       cfg.Display.QRMargin,
		QRDebugFile:    cfg.Display.QRDebugFile,
		PhotoDebugFile: cfg.Display.PhotoDebugFile,
	})

	states := initiateStateStore(ctx, cfg.Redis)
	frameHub := realtime.NewFrameHub()

	credentials := persistence.NewCredentialStore(cfg.Photos.TokenFile)
	photoDirectory := persistence.NewPhotoDirectory(cfg.Photos.DownloadDir)
	photosClient := googlephotos.NewPhotosClient(cfg.Photos.APIEndpoint, func() (*oauth2.Config, error) {
		return configuration.GetGooglePhotosConfig(redirectURL)
	})

	photoUsecase := usecase.NewPhotoUsecase(credentials, photosClient, photoDirectory).
		WithFetchCount(cfg.Photos.FetchCount)
	authUsecase := usecase.NewAuthUsecase(credentials, states, configuration.GetGooglePhotosConfig, redirectURL).
		WithStateTTL(time.Duration(cfg.App.OAuthStateTTLSeconds) * time.Second).
		WithEvents(frameHub)
	frameUsecase := usecase.NewFrameUsecase(credentials, photoUsecase, adapter, usecase.RealClock, usecase.FrameOptions{
		Interval: time.Duration(cfg.Frame.IntervalSeconds) * time.Second,
		Wait:     time.Duration(cfg.Frame.WaitSeconds) * time.Second,
	}).WithEvents(frameHub)

	if err := frameUsecase.ShowConfigURL(configURL); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to show configuration QR code")
	}

	router := server.InitiateRouter(
		httpHandler.NewConfigHandler(authUsecase),
		httpHandler.NewStatusHandler(frameUsecase),
		frameHub,
		cfg.App.SecretKey,
		cfg.App.CorsOrigins,
	)

	logger.GetLogger().WithFields(map[string]interface{}{
		"port":  port,
		"panel": adapter.HasPanel(),
	}).Info("Starting photo frame")

	httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := frameUsecase.Run(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Photo frame stopped with an error")
		os.Exit(2)
	}
}

// detectPanel returns nil when the frame should write debug files instead
func detectPanel(cfg configuration.Display) display.Panel {
	if cfg.Disabled {
		logger.GetLogger().Info("Panel disabled by configuration; rendering to debug files")
		return nil
	}
	panel, err := display.DetectPanel(cfg.SPIPort)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("No e-paper panel detected; rendering to debug files")
		return nil
	}
	return panel
}

func initiateStateStore(ctx context.Context, cfg configuration.Redis) repository.IStateStore {
	if cfg.Addr == "" {
		return cache.NewMemoryStateStore()
	}
	client, err := cache.NewRedisClient(ctx, cfg.Addr, cfg.Username, cfg.Password, cfg.DB)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - keeping OAuth state in memory")
		return cache.NewMemoryStateStore()
	}
	logger.GetLogger().WithField("addr", cfg.Addr).Info("Redis client initialized successfully.")
	return cache.NewRedisStateStore(client)
}
