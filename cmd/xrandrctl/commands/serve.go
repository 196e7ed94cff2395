package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dadmoscow/xrandrctl/internal/api"
	"github.com/dadmoscow/xrandrctl/internal/deps"
	"github.com/dadmoscow/xrandrctl/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the xrandrctl HTTP server",
	Long: `Start an HTTP server exposing the display configuration as a REST
API, plus a websocket stream that pushes a fresh snapshot whenever the
configuration changes.`,
	Example: `  # Start server on the configured port (default 8080)
  xrandrctl serve

  # Start server on a custom port
  xrandrctl serve --port 9090

  # Start with debug logging
  xrandrctl serve --log-level debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "server port (default is 8080)")
	viper.BindPFlag("server_port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	configMgr, client, err := setup()
	if err != nil {
		return err
	}

	if viper.IsSet("server_port") && viper.GetInt("server_port") > 0 {
		configMgr.SetPort(viper.GetInt("server_port"))
	}
	cfg := configMgr.Get()

	log := logger.WithComponent("serve")

	if missing := deps.MissingRequired(); len(missing) > 0 {
		return fmt.Errorf("missing required dependency: %s", missing[0].Dependency.Name)
	}
	if !deps.HasX11Display() {
		log.Warn().Msg("DISPLAY is not set; queries will fail until an X server is reachable")
	}

	// Make sure xrandr works before listening.
	if _, err := client.Snapshot(cmd.Context()); err != nil {
		return fmt.Errorf("initial display query failed: %w", err)
	}

	watcher := api.NewWatcher(client, time.Duration(cfg.PollIntervalMS)*time.Millisecond)
	watcher.Start()
	defer watcher.Stop()

	server := api.NewServer(client, watcher)

	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("HTTP API listening")
		if err := server.Start(cfg.ServerPort); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Info().
		Str("api", fmt.Sprintf("http://localhost:%d/api", cfg.ServerPort)).
		Msg("xrandrctl is running, press Ctrl+C to stop")

	<-sigChan

	log.Info().Msg("Shutting down")
	return nil
}
