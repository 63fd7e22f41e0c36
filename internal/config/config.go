package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir         string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir      string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir         string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	OrderLineFile   string `yaml:"order_line_file" envconfig:"ORDER_LINE_FILE"`
	OrderHeaderFile string `yaml:"order_header_file" envconfig:"ORDER_HEADER_FILE"`
	TargetFile      string `yaml:"target_file" envconfig:"TARGET_FILE"`
}

// AnalysisConfig contains defaults for the analytical pipeline.
// ExchangeRate is the fixed conversion rate applied when formatting
// currency for reports; it is injected here rather than hardcoded in
// the computation packages.
type AnalysisConfig struct {
	MinSupport    float64       `yaml:"min_support" envconfig:"MIN_SUPPORT"`
	MinConfidence float64       `yaml:"min_confidence" envconfig:"MIN_CONFIDENCE"`
	TopN          int           `yaml:"top_n" envconfig:"TOP_N"`
	ExchangeRate  float64       `yaml:"exchange_rate" envconfig:"EXCHANGE_RATE"`
	RunTimeout    time.Duration `yaml:"run_timeout" envconfig:"RUN_TIMEOUT"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE"`
	WriteBufferSize int           `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE"`
	PingPeriod      time.Duration `yaml:"ping_period" envconfig:"PING_PERIOD"`
	PongWait        time.Duration `yaml:"pong_wait" envconfig:"PONG_WAIT"`
}

// Load loads configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := findConfigFile(); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// OrderLinePath returns the resolved path of the order-line CSV.
func (c *Config) OrderLinePath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.OrderLineFile)
}

// OrderHeaderPath returns the resolved path of the order-header CSV.
func (c *Config) OrderHeaderPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.OrderHeaderFile)
}

// TargetPath returns the resolved path of the sales-target CSV.
func (c *Config) TargetPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.TargetFile)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if math.IsNaN(c.Analysis.MinSupport) || c.Analysis.MinSupport <= 0 || c.Analysis.MinSupport > 1 {
		return fmt.Errorf("analysis min_support must be in (0,1], got %v", c.Analysis.MinSupport)
	}
	if math.IsNaN(c.Analysis.MinConfidence) || c.Analysis.MinConfidence <= 0 || c.Analysis.MinConfidence > 1 {
		return fmt.Errorf("analysis min_confidence must be in (0,1], got %v", c.Analysis.MinConfidence)
	}
	if math.IsNaN(c.Analysis.ExchangeRate) || c.Analysis.ExchangeRate <= 0 {
		return fmt.Errorf("analysis exchange_rate must be positive, got %v", c.Analysis.ExchangeRate)
	}
	if c.Analysis.TopN <= 0 {
		return fmt.Errorf("analysis top_n must be positive, got %d", c.Analysis.TopN)
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}
	return nil
}

// findConfigFile returns the path to the config file, if any
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:         "data",
			ReportsDir:      "reports",
			LogsDir:         "logs",
			OrderLineFile:   "OrderDetails.csv",
			OrderHeaderFile: "ListofOrders.csv",
			TargetFile:      "Salestarget.csv",
		},
		Analysis: AnalysisConfig{
			MinSupport:    DefaultMinSupport,
			MinConfidence: DefaultMinConfidence,
			TopN:          DefaultTopN,
			ExchangeRate:  DefaultExchangeRate,
			RunTimeout:    2 * time.Minute,
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			PingPeriod:      30 * time.Second,
			PongWait:        60 * time.Second,
		},
	}
}
