package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	StopWordsPath    string `toml:"stop_words_path" env:"CHATLENS_STOP_WORDS_PATH"`
	StopWordsMatch   string `toml:"stop_words_match" env:"CHATLENS_STOP_WORDS_MATCH" validate:"oneof=substring exact"`
	MediaPlaceholder string `toml:"media_placeholder" env:"CHATLENS_MEDIA_PLACEHOLDER" validate:"required"`
	Scorer           string `toml:"scorer" env:"CHATLENS_SCORER" validate:"oneof=lexicon"`
	TopUsers         int    `toml:"top_users" env:"CHATLENS_TOP_USERS" validate:"min=1,max=100"`
	TopWords         int    `toml:"top_words" env:"CHATLENS_TOP_WORDS" validate:"min=1,max=1000"`
	HistoryEnabled   bool   `toml:"history_enabled" env:"CHATLENS_HISTORY_ENABLED"`
	HistoryDB        string `toml:"history_db" env:"CHATLENS_HISTORY_DB" validate:"required_if=HistoryEnabled true"`
	LogLevel         string `toml:"log_level" env:"CHATLENS_LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	ReportDir        string `toml:"report_dir" env:"CHATLENS_REPORT_DIR"`
}

// Path returns the config file location under home.
func Path(home string) string {
	return filepath.Join(home, ".config", "chatlens", "config.toml")
}

func Defaults(home string) *Config {
	return &Config{
		StopWordsMatch:   "substring",
		MediaPlaceholder: "<Media omitted>",
		Scorer:           "lexicon",
		TopUsers:         5,
		TopWords:         20,
		HistoryEnabled:   true,
		HistoryDB:        filepath.Join(home, ".config", "chatlens", "history.db"),
		LogLevel:         "INFO",
		ReportDir:        ".",
	}
}

// Load reads ~/.config/chatlens/config.toml over the defaults, then applies
// CHATLENS_* environment overrides and validates the result.
func Load() (*Config, error) {
	// a .env in the working directory feeds CHATLENS_* variables; existing ones win
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(Path(home), home)
}

// LoadFrom is Load with an explicit file and home directory. A missing file is not an error.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := Defaults(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	// expand ~ in paths
	cfg.StopWordsPath = expandHome(cfg.StopWordsPath, home)
	cfg.HistoryDB = expandHome(cfg.HistoryDB, home)
	cfg.ReportDir = expandHome(cfg.ReportDir, home)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
