package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Model    ModelConfig
	Gemini   GeminiConfig
	Sidecar  SidecarConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port        string
	AllowOrigin []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	SuspicionTTL  time.Duration
}

// ModelConfig points at the persisted relational-GCN weights.
type ModelConfig struct {
	WeightsPath string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

// SidecarConfig addresses the review-classifier and image-retrieval services.
type SidecarConfig struct {
	ReviewAnalyzerURL   string
	ImageMatchURL       string
	BasicAuthUsername   string
	BasicAuthPassword   string
	SimilarityThreshold float64
}

// Load reads the full server configuration.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("missing gemini api key")
	}

	return cfg, nil
}

// LoadTrainer reads the same environment but only requires what the offline
// trainer uses: the database.
func LoadTrainer() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	suspicionTTL, err := time.ParseDuration(getEnv("SUSPICION_CACHE_TTL", "24h"))
	if err != nil {
		return nil, errors.New("invalid suspicion cache ttl")
	}

	temperature, err := strconv.ParseFloat(getEnv("GEMINI_TEMPERATURE", "0"), 32)
	if err != nil {
		return nil, errors.New("invalid gemini temperature")
	}

	threshold, err := strconv.ParseFloat(getEnv("SIMILARITY_THRESHOLD", "0.3"), 64)
	if err != nil {
		return nil, errors.New("invalid similarity threshold")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "FraudGuard API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			AllowOrigin: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "fraud_guard"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			SuspicionTTL:  suspicionTTL,
		},
		Model: ModelConfig{
			WeightsPath: getEnv("MODEL_WEIGHTS_PATH", "rgcn_seller_fraud.json"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			BaseURL:     getEnv("GEMINI_BASE_URL", ""),
			Temperature: float32(temperature),
		},
		Sidecar: SidecarConfig{
			ReviewAnalyzerURL:   getEnv("REVIEW_ANALYZER_URL", "http://localhost:8002"),
			ImageMatchURL:       getEnv("IMAGE_MATCH_URL", "http://localhost:8001"),
			BasicAuthUsername:   getEnv("SIDECAR_BASIC_AUTH_USERNAME", ""),
			BasicAuthPassword:   getEnv("SIDECAR_BASIC_AUTH_PASSWORD", ""),
			SimilarityThreshold: threshold,
		},
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
