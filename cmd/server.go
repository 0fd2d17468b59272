/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nicolasbonaa/controle-compras/internal/api"
	"github.com/nicolasbonaa/controle-compras/internal/config"
	"github.com/nicolasbonaa/controle-compras/internal/container"
	"github.com/nicolasbonaa/controle-compras/internal/metrics"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Controle de Compras API server.
The server listens on the configured host and port and serves the
dashboard, the JSON API and the Prometheus metrics endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctr, err := container.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		logger := api.GetLogger()

		assetsDir, _ := cmd.Flags().GetString("assets")
		router := api.SetupRouter(cfg, ctr.Controllers(), ctr.CSRFStore, assetsDir)

		// Hot-reload only touches logging; connection pools and routes
		// keep their boot-time settings.
		watcher := config.NewWatcher(cfg, configPath)
		watcher.OnChange(func(updated *config.Config) {
			reloaded, err := api.NewLoggerFromConfig(&updated.Log)
			if err != nil {
				logger.WithError(err).Warn("config reload: keeping current logger")
				return
			}
			api.SetLogger(reloaded)
			logger = reloaded
			logger.WithField("level", updated.Log.Level).Info("logger reconfigured")
		})
		if err := watcher.Start(); err != nil {
			logger.WithError(err).Warn("config watcher disabled")
		}
		defer watcher.Stop()

		// Refresh the connection-pool gauges every 15s.
		gaugeStop := make(chan struct{})
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-gaugeStop:
					return
				case <-ticker.C:
					if err := metrics.UpdateDatabaseConnections(ctr.DB); err != nil {
						logger.WithError(err).Debug("pool gauge update failed")
					}
				}
			}
		}()
		defer close(gaugeStop)

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("failed to start server")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Fatal("server forced to shutdown")
		}

		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("config", "", "Config file path (default: search in current directory, ./config, or $HOME/.controle-compras)")
	serverCmd.Flags().String("assets", "web", "Directory holding templates/ and static/ for the dashboard")
}
