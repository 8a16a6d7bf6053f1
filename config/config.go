package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListen      = ":7458"
	DefaultModel       = "gemini-2.0-flash"
	DefaultUpstreamURL = "https://generativelanguage.googleapis.com/v1beta/models/" + DefaultModel + ":generateContent"

	upstreamURLFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

	BackendREST = "rest"
	BackendSDK  = "sdk"
)

type Config struct {
	Listen         string        `yaml:"listen" validate:"required"`
	APIKey         string        `yaml:"apiKey" validate:"required"`
	UpstreamURL    string        `yaml:"upstreamURL" validate:"required,url"`
	Model          string        `yaml:"model" validate:"required"`
	Backend        string        `yaml:"backend" validate:"oneof=rest sdk"`
	PingInterval   time.Duration `yaml:"pingInterval" validate:"gte=0"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	LogLevel       string        `yaml:"logLevel"`
	Debug          bool          `yaml:"debug"`
}

func (c *Config) setDefaults() {
	c.Listen = DefaultListen
	c.Model = DefaultModel
	c.Backend = BackendREST
	c.PingInterval = 30 * time.Second
	c.AllowedOrigins = []string{"*"}
	c.LogLevel = "info"
}

// applyEnv overlays environment variables onto the values read from the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("UPSTREAM_URL"); v != "" {
		c.UpstreamURL = v
	}
	if v := os.Getenv("MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("PING_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PingInterval = d
		} else {
			log.Warnf("ignore bad PING_INTERVAL %q: %s", v, err)
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

func configFile() string {
	if v := os.Getenv("CONFIG_FILE"); v != "" {
		return v
	}
	return "config.yml"
}

// Load builds a Config from defaults, the optional yaml file, .env and the
// process environment, in that order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &Config{}
	cfg.setDefaults()

	path := configFile()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && os.Getenv("CONFIG_FILE") == "":
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	if cfg.UpstreamURL == "" {
		cfg.UpstreamURL = fmt.Sprintf(upstreamURLFormat, cfg.Model)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	mu        sync.RWMutex
	current   = &Config{}
	callbacks []func()
)

func init() {
	current.setDefaults()
}

// Init loads the process-wide configuration, exiting on failure.
func Init() {
	if err := Reload(); err != nil {
		log.Fatalf("load config: %s", err)
	}
}

// Reload re-reads every source and swaps the snapshot. The previous snapshot
// is kept on error.
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	mu.Lock()
	current = cfg
	cbs := append([]func(){}, callbacks...)
	mu.Unlock()
	for _, cb := range cbs {
		cb()
	}
	return nil
}

// ReadConfig returns a copy of the current snapshot.
func ReadConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return *current
}

func GetLogLevel() log.Level {
	lvl, err := log.ParseLevel(ReadConfig().LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func GetIsDebug() bool {
	return ReadConfig().Debug
}

func AddConfigChangeCallback(cb func()) {
	mu.Lock()
	defer mu.Unlock()
	callbacks = append(callbacks, cb)
}
