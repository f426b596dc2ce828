package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App     App     `yaml:"app"`
	Storage Storage `yaml:"storage"`
	LLM     LLM     `yaml:"llm"`
	Agent   Agent   `yaml:"agent"`
}

type App struct {
	Port     string `yaml:"port" env:"APP_PORT" env-default:"8080"`
	LogLevel string `yaml:"log_level" env:"APP_LOG_LEVEL" env-default:"info"`
}

type Storage struct {
	// "file" or "postgres".
	Type          string `yaml:"type" env:"STORAGE_TYPE" env-default:"file"`
	FilePath      string `yaml:"file_path" env:"STORAGE_FILE_PATH" env-default:"./data/standup-data.json"`
	BackupDir     string `yaml:"backup_dir" env:"STORAGE_BACKUP_DIR" env-default:"./data/backup"`
	DatabaseURL   string `yaml:"database_url" env:"DATABASE_URL" env-default:"postgres://pguser:pgpass@db:5432/standupdb?sslmode=disable"`
	MigrationsDir string `yaml:"migrations_dir" env:"MIGRATIONS_DIR" env-default:"./migrations"`
}

type LLM struct {
	BaseURL   string `yaml:"base_url" env:"LLM_BASE_URL"`
	APIKey    string `yaml:"api_key" env:"LLM_API_KEY"`
	Model     string `yaml:"model" env:"LLM_MODEL" env-default:"claude-3-sonnet"`
	MaxTokens int    `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"1000"`
	// Exposed for operators; the client does not currently enforce it.
	Timeout time.Duration `yaml:"timeout" env:"LLM_TIMEOUT" env-default:"30s"`
}

type Agent struct {
	MaxQuestions int `yaml:"max_questions" env:"AGENT_MAX_QUESTIONS" env-default:"5"`
	LookbackDays int `yaml:"lookback_days" env:"AGENT_LOOKBACK_DAYS" env-default:"7"`
}

func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	cfg := &Config{}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			log.Fatalf("failed to read config file: %v", err)
		}
		return cfg
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatalf("failed to read config from env: %v", err)
	}
	return cfg
}
