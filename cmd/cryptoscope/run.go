package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zappabad/cryptoscope/internal/history"
	"github.com/zappabad/cryptoscope/internal/server"
	"github.com/zappabad/cryptoscope/pkg/logger"
	"github.com/zappabad/cryptoscope/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout belongs to the alt screen, so logs go to a file.
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding, cfg.Logger.File)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting CryptoScope", logger.StringField("mode", cfg.Lookup.Mode), logger.StringField("version", cfg.App.Version))

	l, closer, err := buildLookup(cmd.Context(), cfg, appLogger)
	if err != nil {
		return err
	}
	defer closer.Close()

	model := tui.NewModel(tui.Options{
		Lookup:        l,
		History:       history.New(cfg.UI.HistorySize),
		Share:         buildShare(cfg, appLogger),
		Suggestions:   cfg.UI.Suggestions,
		RefreshDelay:  cfg.UI.RefreshDelay,
		LookupTimeout: cfg.Lookup.Timeout,
		Logger:        appLogger,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l, closer, err := buildLookup(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer closer.Close()

	srv := server.New(l, cfg.UI.Suggestions, appLogger.Named("server"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Error("HTTP server failed", logger.ErrorField(err))
			return err
		}
	case <-ctx.Done():
		appLogger.Info("Shutting down HTTP server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
		return err
	}
	appLogger.Info("Server exited gracefully")
	return nil
}
