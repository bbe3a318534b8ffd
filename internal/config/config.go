package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Storage struct {
		BasePath string `yaml:"base_path"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize          int64    `yaml:"max_size"`           // Max video size in bytes
		AllowedTypes     []string `yaml:"allowed_types"`      // Allowed video MIME types
		MaxThumbnailSize int64    `yaml:"max_thumbnail_size"` // Max thumbnail size in bytes
		ThumbnailTypes   []string `yaml:"thumbnail_types"`    // Allowed thumbnail MIME types
	} `yaml:"upload"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml, or builds the config from
// environment variables when DATABASE_PATH is set (test mode).
func LoadConfig() {
	var cfg Config

	dbPath := os.Getenv("DATABASE_PATH")

	if dbPath == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.Path = dbPath
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Storage.BasePath = os.Getenv("STORAGE_PATH")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "videostream.db"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 100 * 1024 * 1024 // 100MiB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{"video/mp4", "video/webm", "video/ogg"}
	}
	if cfg.Upload.MaxThumbnailSize == 0 {
		cfg.Upload.MaxThumbnailSize = 5 * 1024 * 1024 // 5MiB
	}
	if len(cfg.Upload.ThumbnailTypes) == 0 {
		cfg.Upload.ThumbnailTypes = []string{"image/jpeg", "image/png", "image/webp"}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
