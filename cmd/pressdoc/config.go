package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/gemini"
	"github.com/fwojciec/pressdoc/goquery"
	"github.com/fwojciec/pressdoc/minio"
	"github.com/fwojciec/pressdoc/postgres"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName names the XDG directories the program uses.
const AppName = "pressdoc"

// Environment variables that override the config file.
const (
	EnvConfig         = "PRESSDOC_CONFIG"
	EnvDB             = "PRESSDOC_DB"
	EnvDBPassword     = "PRESSDOC_DB_PASSWORD"
	EnvMinioSecretKey = "PRESSDOC_MINIO_SECRET_KEY"
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the program configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Minio    MinioConfig    `yaml:"minio"`
	Crawler  CrawlerConfig  `yaml:"crawler"`
	Parser   ParserConfig   `yaml:"parser"`
	Body     BodyConfig     `yaml:"body"`
	Gemini   GeminiConfig   `yaml:"gemini"`
}

// LoggingConfig selects the log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File appends logs to a file instead of stderr.
	File string `yaml:"file"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	DataDir string `yaml:"data_dir"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`

	// Path is the SQLite database file.
	Path string `yaml:"path"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	MinSize  int    `yaml:"min_size"`
	MaxSize  int    `yaml:"max_size"`
}

type MinioConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Secure    bool   `yaml:"secure"`
	Region    string `yaml:"region"`
}

// CrawlerConfig describes the board to crawl and how politely.
type CrawlerConfig struct {
	pressdoc.Board `yaml:",inline"`

	StartPage   int           `yaml:"start_page"`
	MaxPages    int           `yaml:"max_pages"`
	Delay       time.Duration `yaml:"delay"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	Output      string        `yaml:"output"`

	// Browser renders pages in headless Chrome. "auto" compares a plain
	// and a rendered first list page and picks the browser only when the
	// rendered one lists more articles.
	Browser string `yaml:"browser"`
	// ReadySelector is awaited before a rendered page is read.
	ReadySelector string `yaml:"ready_selector"`
}

// ParserConfig locates the document parsing service.
type ParserConfig struct {
	BaseURL      string        `yaml:"base_url"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// BodyConfig tunes how article bodies are classified.
type BodyConfig struct {
	HeaderPolicy string `yaml:"header_policy"`
	Dedup        string `yaml:"dedup"`
}

// ClassifierOptions converts the body settings into classifier options.
func (c BodyConfig) ClassifierOptions() ([]goquery.ClassifierOption, error) {
	policy, err := pressdoc.ParseHeaderPolicy(c.HeaderPolicy)
	if err != nil {
		return nil, err
	}
	dedup, err := pressdoc.ParseDedupMode(c.Dedup)
	if err != nil {
		return nil, err
	}
	return []goquery.ClassifierOption{
		goquery.WithHeaderPolicy(policy),
		goquery.WithDedupMode(dedup),
	}, nil
}

type GeminiConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"-"`
}

// Browser modes.
const (
	BrowserOff  = "off"
	BrowserOn   = "on"
	BrowserAuto = "auto"
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		App:     AppConfig{Name: AppName, DataDir: dataDir},
		Database: DatabaseConfig{
			Driver:  DriverSQLite,
			Path:    filepath.Join(dataDir, "pressdoc.db"),
			Host:    "localhost",
			Port:    5432,
			Name:    "smart_news",
			User:    "postgres",
			MinSize: 5,
			MaxSize: 10,
		},
		Minio: MinioConfig{
			Host:      "localhost",
			Port:      9000,
			AccessKey: "root",
			SecretKey: "password",
			Bucket:    "news-reports",
		},
		Crawler: CrawlerConfig{
			Board: pressdoc.Board{
				BaseURL: "https://www.airport.kr",
				ListURL: "https://www.airport.kr/co_ko/664/subview.do",
				Path:    "/bbs/co_ko/84/",
			},
			StartPage:     1,
			Delay:         time.Second,
			Concurrency:   4,
			Timeout:       20 * time.Second,
			Output:        "incheon_press.json",
			Browser:       BrowserOff,
			ReadySelector: "table tbody tr",
		},
		Parser: ParserConfig{
			BaseURL:      "http://localhost:8000",
			PollInterval: 500 * time.Millisecond,
		},
		Body:   BodyConfig{HeaderPolicy: "aligned", Dedup: "node"},
		Gemini: GeminiConfig{Model: gemini.DefaultModel},
	}
}

// DefaultConfigPath returns the config file in the XDG config directory,
// or PRESSDOC_CONFIG when set.
func DefaultConfigPath() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadConfig reads the YAML file at path over the defaults, then applies
// environment overrides. .env files in the working directory are loaded
// first; variables already set in the environment win over them.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, pressdoc.Errorf(pressdoc.EINVALID, "invalid config %s: %v", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads .env.local and then .env. godotenv never overrides a
// variable that is already set, so .env.local wins over .env.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvMinioSecretKey); v != "" {
		c.Minio.SecretKey = v
	}
	c.Gemini.APIKey = os.Getenv(EnvGeminiAPIKey)
}

// Validate reports settings the program cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return pressdoc.Errorf(pressdoc.EINVALID, "unknown database driver %q", c.Database.Driver)
	}
	switch c.Crawler.Browser {
	case BrowserOff, BrowserOn, BrowserAuto:
	default:
		return pressdoc.Errorf(pressdoc.EINVALID, "unknown browser mode %q", c.Crawler.Browser)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := c.Body.ClassifierOptions(); err != nil {
		return err
	}
	if c.Crawler.Concurrency < 0 {
		return pressdoc.Errorf(pressdoc.EINVALID, "crawler concurrency must not be negative")
	}
	return nil
}

// PostgresConfig returns the connection settings of the postgres driver.
func (c *Config) PostgresConfig() postgres.Config {
	return postgres.Config{
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		Database: c.Database.Name,
		SSLMode:  c.Database.SSLMode,
		MinConns: c.Database.MinSize,
		MaxConns: c.Database.MaxSize,
	}
}

// ObjectStoreConfig returns the connection settings of the object store.
func (c *Config) ObjectStoreConfig() minio.Config {
	return minio.Config{
		Host:      c.Minio.Host,
		Port:      c.Minio.Port,
		AccessKey: c.Minio.AccessKey,
		SecretKey: c.Minio.SecretKey,
		Bucket:    c.Minio.Bucket,
		Secure:    c.Minio.Secure,
		Region:    c.Minio.Region,
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	switch strings.ToLower(s) {
	case "warning":
		return slog.LevelWarn, nil
	case "critical":
		return slog.LevelError, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, pressdoc.Errorf(pressdoc.EINVALID, "unknown log level %q", s)
	}
	return level, nil
}

// NewLogger builds the logger described by cfg. Logs go to w unless a file
// is configured; the returned closer releases that file.
func NewLogger(cfg LoggingConfig, w io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		closer.Close()
		return nil, nil, pressdoc.Errorf(pressdoc.EINVALID, "unknown log format %q", cfg.Format)
	}
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
