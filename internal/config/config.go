package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the shopsense engine configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Data      DataConfig      `yaml:"data"`
	Index     IndexConfig     `yaml:"index"`
	Database  DatabaseConfig  `yaml:"database"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Summary   SummaryConfig   `yaml:"summary"`
	Compare   CompareConfig   `yaml:"compare"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings for serve mode.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DataConfig holds source table locations.
type DataConfig struct {
	Dir             string `yaml:"dir"`
	ProductsFile    string `yaml:"products_file"`
	SpecsFile       string `yaml:"specs_file"`
	ReviewsFile     string `yaml:"reviews_file"`
	WatchDebounceMS int    `yaml:"watch_debounce_ms"`
}

// IndexConfig holds vector index persistence settings.
type IndexConfig struct {
	Store string `yaml:"store"` // file, redis (default: file)
	Path  string `yaml:"path"`  // snapshot path for the file store
}

// DatabaseConfig holds Redis connection settings. The database is optional:
// it backs the embedding cache and the redis index store when configured.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// RankingConfig holds the re-ranking weights. The three preference weights
// must sum to 1.0; Alpha blends normalized similarity against the
// preference score.
type RankingConfig struct {
	CategoryWeight float64 `yaml:"category_weight"`
	PriceWeight    float64 `yaml:"price_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
	Alpha          float64 `yaml:"alpha"`
}

// SummaryConfig holds summary generation settings.
type SummaryConfig struct {
	ExcerptChars int `yaml:"excerpt_chars"`
}

// CompareConfig holds comparison settings.
type CompareConfig struct {
	Limit int `yaml:"limit"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.ProductsFile == "" {
		c.Data.ProductsFile = "products.csv"
	}
	if c.Data.SpecsFile == "" {
		c.Data.SpecsFile = "specs.csv"
	}
	if c.Data.ReviewsFile == "" {
		c.Data.ReviewsFile = "reviews.csv"
	}
	if c.Data.WatchDebounceMS <= 0 {
		c.Data.WatchDebounceMS = 400
	}
	if c.Index.Store == "" {
		c.Index.Store = "file"
	}
	if c.Index.Path == "" {
		c.Index.Path = filepath.Join(c.Data.Dir, "index.json")
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 30
	}
	if c.Ranking.CategoryWeight == 0 && c.Ranking.PriceWeight == 0 && c.Ranking.KeywordWeight == 0 {
		c.Ranking.CategoryWeight = 0.3
		c.Ranking.PriceWeight = 0.3
		c.Ranking.KeywordWeight = 0.4
	}
	if c.Ranking.Alpha == 0 {
		c.Ranking.Alpha = 0.6
	}
	if c.Summary.ExcerptChars <= 0 {
		c.Summary.ExcerptChars = 220
	}
	if c.Compare.Limit <= 0 {
		c.Compare.Limit = 3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Index.Store {
	case "file", "redis":
	default:
		return fmt.Errorf("index.store must be \"file\" or \"redis\", got %q", c.Index.Store)
	}
	if c.Index.Store == "redis" && len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required when index.store is \"redis\"")
	}
	sum := c.Ranking.CategoryWeight + c.Ranking.PriceWeight + c.Ranking.KeywordWeight
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		return fmt.Errorf("ranking weights must sum to 1.0, got %v", sum)
	}
	if c.Ranking.Alpha < 0 || c.Ranking.Alpha > 1 {
		return fmt.Errorf("ranking.alpha must be in [0, 1], got %v", c.Ranking.Alpha)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
