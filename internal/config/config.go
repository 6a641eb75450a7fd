package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config represents the full goldsim configuration file.
type Config struct {
	API       APIConfig       `json:"api" mapstructure:"api"`
	Dashboard DashboardConfig `json:"dashboard" mapstructure:"dashboard"`
	Trade     TradeConfig     `json:"trade" mapstructure:"trade"`
	Logger    LoggerConfig    `json:"logger" mapstructure:"logger"`
}

// APIConfig points the client at the simulation server.
type APIConfig struct {
	BaseURL        string  `json:"baseUrl" mapstructure:"baseUrl"`
	SessionCookie  string  `json:"sessionCookie" mapstructure:"sessionCookie"`
	SessionValue   string  `json:"sessionValue" mapstructure:"sessionValue"`
	RateLimit      float64 `json:"rateLimit" mapstructure:"rateLimit"`
	RateLimitBurst int     `json:"rateLimitBurst" mapstructure:"rateLimitBurst"`
}

// DashboardConfig holds the initial dashboard state.
type DashboardConfig struct {
	EndDate     string `json:"endDate" mapstructure:"endDate"`
	Unit        string `json:"unit" mapstructure:"unit"`
	Locale      string `json:"locale" mapstructure:"locale"`
	ControlFile string `json:"controlFile" mapstructure:"controlFile"`
	ChartHeight int    `json:"chartHeight" mapstructure:"chartHeight"`
}

// TradeConfig pre-fills the trade simulation form.
type TradeConfig struct {
	BuyDate   string `json:"buyDate" mapstructure:"buyDate"`
	SellDate  string `json:"sellDate" mapstructure:"sellDate"`
	BuyAmount string `json:"buyAmount" mapstructure:"buyAmount"`
}

// LoggerConfig controls the zap logger. The TUI owns the terminal, so logs
// go to File.
type LoggerConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	File   string `json:"file" mapstructure:"file"`
}

// Defaults returns the configuration used when no file or env override is
// present.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080",
			SessionCookie:  "JSESSIONID",
			RateLimit:      10,
			RateLimitBurst: 5,
		},
		Dashboard: DashboardConfig{
			EndDate:     "2024-12-31",
			Unit:        "1m",
			Locale:      "ko",
			ChartHeight: 12,
		},
		Trade: TradeConfig{
			BuyDate:   "2024-01-02",
			SellDate:  "2024-01-31",
			BuyAmount: "1000000",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "console",
			File:   "goldsim.log",
		},
	}
}

// SetDefaults registers Defaults() on v so that file and environment values
// layer on top of them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("api.baseUrl", d.API.BaseURL)
	v.SetDefault("api.sessionCookie", d.API.SessionCookie)
	v.SetDefault("api.sessionValue", d.API.SessionValue)
	v.SetDefault("api.rateLimit", d.API.RateLimit)
	v.SetDefault("api.rateLimitBurst", d.API.RateLimitBurst)
	v.SetDefault("dashboard.endDate", d.Dashboard.EndDate)
	v.SetDefault("dashboard.unit", d.Dashboard.Unit)
	v.SetDefault("dashboard.locale", d.Dashboard.Locale)
	v.SetDefault("dashboard.controlFile", d.Dashboard.ControlFile)
	v.SetDefault("dashboard.chartHeight", d.Dashboard.ChartHeight)
	v.SetDefault("trade.buyDate", d.Trade.BuyDate)
	v.SetDefault("trade.sellDate", d.Trade.SellDate)
	v.SetDefault("trade.buyAmount", d.Trade.BuyAmount)
	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.file", d.Logger.File)
}

// singleton holds the loaded config and the file it came from.
var (
	globalCfg  *Config
	globalFile string
	mu         sync.RWMutex
)

// Load decodes the configuration held by v. Environment variables use the
// GOLDSIM_ prefix with "." replaced by "_" (GOLDSIM_API_BASEURL). The result
// is cached for Get.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("goldsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	file := v.ConfigFileUsed()
	cfg.Logger.File = ResolvePath(file, cfg.Logger.File)
	cfg.Dashboard.ControlFile = ResolvePath(file, cfg.Dashboard.ControlFile)

	mu.Lock()
	globalCfg = &cfg
	globalFile = file
	mu.Unlock()

	return &cfg, nil
}

// Get returns the cached config. It panics if Load has not been called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()

	if globalCfg == nil {
		panic("config.Get() called before config.Load()")
	}
	return globalCfg
}

// File returns the config file path used by Load, or "" when running on
// defaults only.
func File() string {
	mu.RLock()
	defer mu.RUnlock()
	return globalFile
}

// Save writes cfg as indented JSON to path, creating parent directories.
// It refuses to overwrite an existing file unless force is set.
func Save(cfg *Config, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
