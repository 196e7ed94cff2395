package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dadmoscow/xrandrctl/internal/config"
	"github.com/dadmoscow/xrandrctl/internal/logger"
	"github.com/dadmoscow/xrandrctl/internal/randr"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "xrandrctl",
		Short: "xrandrctl - work with X11 displays as objects",
		Long: `xrandrctl wraps the xrandr command-line utility: it parses the query
output into display objects and builds xrandr invocations from the
changes you request.

Features:
  • List outputs with connection state, resolution, rotation and modes
  • Enable, disable and reconfigure outputs with validation up front
  • Position outputs relative to each other
  • REST API and websocket change stream for integration`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/xrandrctl/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("xrandr", "", "path to the xrandr binary")

	// Bind flags to viper
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("xrandr_path", rootCmd.PersistentFlags().Lookup("xrandr"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// setup loads configuration, configures logging and builds the xrandr
// client commands work against. Flag overrides win over the file.
func setup() (*config.Manager, *randr.Client, error) {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if viper.IsSet("log_level") && viper.GetString("log_level") != "" {
		configMgr.SetLogLevel(viper.GetString("log_level"))
	}

	cfg := configMgr.Get()
	logger.Init(cfg.LogLevel, true)

	bin := cfg.XrandrPath
	if viper.IsSet("xrandr_path") && viper.GetString("xrandr_path") != "" {
		bin = viper.GetString("xrandr_path")
	}

	client := randr.New(randr.WithBinary(bin))
	return configMgr, client, nil
}
