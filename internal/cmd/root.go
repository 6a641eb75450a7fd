package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Dallionking/goldsim/internal/api"
	"github.com/Dallionking/goldsim/internal/config"
	"github.com/Dallionking/goldsim/internal/format"
	"github.com/Dallionking/goldsim/internal/logger"
	"github.com/Dallionking/goldsim/internal/tui/styles"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	// configErr is set when an explicitly requested config file could not
	// be read.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "goldsim",
	Short: "Gold price simulation dashboard",
	Long: `goldsim: gold price and trade simulation in the terminal

Charts the won/dollar rate, VIX and gold ETF volume next to the gold
price and its LSTM forecast, and simulates buying gold on one day and
selling it on another.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), styles.Gold(styles.Logo)+"  "+styles.Value.Render("v"+Version))
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'goldsim --help' for available commands")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: nearest goldsim.json/yaml/toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
}

func initConfig() {
	if noColor {
		// Read by lipgloss when it first detects the color profile.
		_ = os.Setenv("NO_COLOR", "1")
	}

	configErr = nil
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if found := config.DetectConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		return
	}

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		configErr = err
	}
}

// loadConfig decodes the layered configuration without validating it.
func loadConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, fmt.Errorf("reading config %s: %w", cfgFile, configErr)
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// setup loads and validates the config, applies the number locale and
// builds the logger. Callers should Sync the logger before returning.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, nil, fmt.Errorf("invalid config (run 'goldsim config validate'): %w", errors.Join(joined...))
	}

	if err := format.SetLocale(cfg.Dashboard.Locale); err != nil {
		return nil, nil, err
	}

	log, err := logger.NewLogger(cfg.Logger, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	log.Debug("Config loaded", zap.String("file", config.File()), zap.String("server", cfg.API.BaseURL))
	return cfg, log, nil
}

func newClient(cfg *config.Config, log *zap.Logger) *api.Client {
	return api.NewClient(cfg.API, log)
}
