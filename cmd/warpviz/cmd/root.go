package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/config"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/logging"
)

var (
	warp10URL     string
	quantumVizURL string
	logLevel      string
	devMode       bool
)

var rootCmd = &cobra.Command{
	Use:           "warpviz",
	Short:         "Notebook interpreters for Warp 10 and QuantumViz",
	Long:          `warpviz runs WarpScript against a Warp 10 endpoint, shares the results through a store and renders them with QuantumViz widgets.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&warp10URL, "warp10-url", "", "Warp 10 API base URL (overrides WARP10_URL)")
	rootCmd.PersistentFlags().StringVar(&quantumVizURL, "quantumviz-url", "", "QuantumViz asset base URL (overrides QUANTUMVIZ_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "development mode (console logs, debug level)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig(c *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := c.Flags()
	if flags.Changed("warp10-url") {
		cfg.Warp10.URL = warp10URL
	}
	if flags.Changed("quantumviz-url") {
		cfg.QuantumViz.URL = quantumVizURL
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("dev") {
		cfg.Logging.Development = devMode
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	logCfg.Level = cfg.Logging.Level

	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
