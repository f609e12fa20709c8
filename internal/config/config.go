package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env            string   `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer     `yaml:"http_server"`
	FrontendDir    string   `yaml:"frontend_dir" env:"FRONTEND_DIR" env-default:"./frontend-dist"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173"`

	Log Log `yaml:"log"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`

	Narrative Narrative `yaml:"narrative"`
	Gemini    Gemini    `yaml:"gemini"`
	Session   Session   `yaml:"session"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

// Log tunes the stdout logger. Level overrides the env default when set;
// an empty ErrorFile turns the error mirror off.
type Log struct {
	Level     string `yaml:"level" env:"LOG_LEVEL"`
	ErrorFile string `yaml:"error_file" env:"LOG_ERROR_FILE"`
}

// Narrative configures the client side of the insight relay.
type Narrative struct {
	RelayURL   string        `yaml:"relay_url" env:"NARRATIVE_RELAY_URL" env-default:"http://localhost:4001/api/gemini"`
	Timeout    time.Duration `yaml:"timeout" env:"NARRATIVE_TIMEOUT" env-default:"30s"`
	Structured bool          `yaml:"structured" env:"NARRATIVE_STRUCTURED" env-default:"false"`
}

type Gemini struct {
	APIKey      string  `yaml:"api_key" env:"API_KEY"`
	Model       string  `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.0-flash-exp"`
	Temperature float32 `yaml:"temperature" env-default:"0.7"`
}

type Session struct {
	TTL           time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"2h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"5m"`
	MaxSessions   int           `yaml:"max_sessions" env:"SESSION_MAX" env-default:"10000"`
}

// Load reads .env if present, then the yaml file at path. A missing file
// is not an error: the config is then built from the environment alone.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return &cfg, nil
}

func MustConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
