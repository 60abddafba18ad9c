package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env    string       `yaml:"env"`
	HTTP   HTTPConfig   `yaml:"http"`
	Log    LogConfig    `yaml:"log"`
	Redis  RedisConfig  `yaml:"redis"`
	S3     S3Config     `yaml:"s3"`
	AI     AIConfig     `yaml:"ai"`
	Limits LimitsConfig `yaml:"limits"`
	Share  ShareConfig  `yaml:"share"`
	Admin  AdminConfig  `yaml:"admin"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// AIConfig points at the generation endpoints. An empty APIKey is a valid
// configuration: the app then serves fallback content only.
type AIConfig struct {
	APIKey         string `yaml:"api_key"`
	TextURL        string `yaml:"text_url"`
	ImageURL       string `yaml:"image_url"`
	TextModel      string `yaml:"text_model"`
	ImageModel     string `yaml:"image_model"`
	ImageSize      string `yaml:"image_size"`
	CompatibleMode bool   `yaml:"compatible_mode"`
	CompatibleURL  string `yaml:"compatible_url"`
}

type LimitsConfig struct {
	PredictPerMinute int `yaml:"predict_per_minute"`
	PredictPerDay    int `yaml:"predict_per_day"`
}

type ShareConfig struct {
	CardTTL time.Duration `yaml:"card_ttl"`
}

// AdminConfig holds the static token for the admin surface. An empty token
// keeps every admin route locked.
type AdminConfig struct {
	Token string `yaml:"token"`
}

func Default() Config {
	return Config{
		Env: "dev",
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		Log: LogConfig{Level: "debug"},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			DB:   0,
		},
		S3: S3Config{
			Endpoint:  "localhost:9000",
			AccessKey: "minio",
			SecretKey: "minio123",
			Bucket:    "soulmate-portraits",
			UseSSL:    false,
		},
		AI: AIConfig{
			APIKey:        "",
			TextURL:       "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation",
			ImageURL:      "https://dashscope.aliyuncs.com/api/v1/services/aigc/multimodal-generation/generation",
			TextModel:     "qwen-plus",
			ImageModel:    "z-image-turbo",
			ImageSize:     "1024*1024",
			CompatibleURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
		},
		Limits: LimitsConfig{
			PredictPerMinute: 6,
			PredictPerDay:    60,
		},
		Share: ShareConfig{
			CardTTL: 7 * 24 * time.Hour,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config yaml: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if err := overrideDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if err := overrideInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}

	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.S3.Endpoint = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.S3.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.S3.SecretKey = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.S3.Region = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if err := overrideBool("S3_USE_SSL", &cfg.S3.UseSSL); err != nil {
		return err
	}

	if v := os.Getenv("DASHSCOPE_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("AI_TEXT_URL"); v != "" {
		cfg.AI.TextURL = v
	}
	if v := os.Getenv("AI_IMAGE_URL"); v != "" {
		cfg.AI.ImageURL = v
	}
	if v := os.Getenv("AI_TEXT_MODEL"); v != "" {
		cfg.AI.TextModel = v
	}
	if v := os.Getenv("AI_IMAGE_MODEL"); v != "" {
		cfg.AI.ImageModel = v
	}
	if v := os.Getenv("AI_IMAGE_SIZE"); v != "" {
		cfg.AI.ImageSize = v
	}
	if err := overrideBool("AI_COMPATIBLE_MODE", &cfg.AI.CompatibleMode); err != nil {
		return err
	}
	if v := os.Getenv("AI_COMPATIBLE_URL"); v != "" {
		cfg.AI.CompatibleURL = v
	}

	if err := overrideInt("PREDICT_PER_MINUTE", &cfg.Limits.PredictPerMinute); err != nil {
		return err
	}
	if err := overrideInt("PREDICT_PER_DAY", &cfg.Limits.PredictPerDay); err != nil {
		return err
	}

	if err := overrideDuration("SHARE_CARD_TTL", &cfg.Share.CardTTL); err != nil {
		return err
	}

	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.Admin.Token = v
	}

	return nil
}

func overrideDuration(key string, target *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s duration: %w", key, err)
	}
	*target = d
	return nil
}

func overrideInt(key string, target *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s int: %w", key, err)
	}
	*target = n
	return nil
}

func overrideBool(key string, target *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s bool: %w", key, err)
	}
	*target = b
	return nil
}
