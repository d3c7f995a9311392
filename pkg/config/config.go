package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	OpenAI      OpenAIConfig
	Explanation ExplanationConfig
	Experience  ExperienceConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type JWTConfig struct {
	SecretKey string
}

type OpenAIConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
}

// ExplanationConfig carries the enrichment pipeline budgets. All durations
// are tunable; defaults mirror production behavior.
type ExplanationConfig struct {
	TopK              int           // candidates that receive generated explanations
	MaxConcurrent     int           // in-flight generations per batch
	MaxAttempts       int           // retry loop bound
	GenerationTimeout time.Duration // single explanation generation
	ItemTimeout       time.Duration // one item end to end, retries included
	BatchTimeout      time.Duration // soft budget for a whole batch
	CacheTTL          time.Duration // adaptive explanation cache entries
	SessionTTL        time.Duration // redis session records
}

// ExperienceConfig holds the level decision thresholds. These are product
// policy, not algorithmic necessity, so they live in config.
type ExperienceConfig struct {
	AdvancedCollection  int
	AdvancedDays        int
	AdvancedEngagement  float64
	AdvancedSignals     int
	IntermediateCollect int
	IntermediateDays    int
	IntermediateEngage  float64
	IntermediateSignals int
	ClassifyTimeout     time.Duration // signal fetch deadline for one classification
	ProfileCacheTTL     time.Duration
	LevelOnlyCacheTTL   time.Duration
	BatchedSignalReads  bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ScentMatch Recommendation API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "scentmatch"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		OpenAI: OpenAIConfig{
			BaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens: getEnvInt("OPENAI_MAX_TOKENS", 200),
		},
		Explanation: ExplanationConfig{
			TopK:              getEnvInt("EXPLANATION_TOP_K", 5),
			MaxConcurrent:     getEnvInt("EXPLANATION_MAX_CONCURRENT", 3),
			MaxAttempts:       getEnvInt("EXPLANATION_MAX_ATTEMPTS", 3),
			GenerationTimeout: getEnvDuration("EXPLANATION_GENERATION_TIMEOUT", 15*time.Second),
			ItemTimeout:       getEnvDuration("EXPLANATION_ITEM_TIMEOUT", 20*time.Second),
			BatchTimeout:      getEnvDuration("EXPLANATION_BATCH_TIMEOUT", 30*time.Second),
			CacheTTL:          getEnvDuration("EXPLANATION_CACHE_TTL", time.Hour),
			SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		},
		Experience: ExperienceConfig{
			AdvancedCollection:  getEnvInt("EXPERIENCE_ADVANCED_COLLECTION", 10),
			AdvancedDays:        getEnvInt("EXPERIENCE_ADVANCED_DAYS", 30),
			AdvancedEngagement:  getEnvFloat("EXPERIENCE_ADVANCED_ENGAGEMENT", 0.7),
			AdvancedSignals:     getEnvInt("EXPERIENCE_ADVANCED_SIGNALS", 2),
			IntermediateCollect: getEnvInt("EXPERIENCE_INTERMEDIATE_COLLECTION", 3),
			IntermediateDays:    getEnvInt("EXPERIENCE_INTERMEDIATE_DAYS", 7),
			IntermediateEngage:  getEnvFloat("EXPERIENCE_INTERMEDIATE_ENGAGEMENT", 0.4),
			IntermediateSignals: getEnvInt("EXPERIENCE_INTERMEDIATE_SIGNALS", 1),
			ClassifyTimeout:     getEnvDuration("EXPERIENCE_CLASSIFY_TIMEOUT", 8*time.Second),
			ProfileCacheTTL:     getEnvDuration("EXPERIENCE_PROFILE_CACHE_TTL", 30*time.Minute),
			LevelOnlyCacheTTL:   getEnvDuration("EXPERIENCE_LEVEL_CACHE_TTL", time.Hour),
			BatchedSignalReads:  getEnvBool("EXPERIENCE_BATCHED_READS", true),
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("missing openai api key")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}

	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}

	return defaultVal
}
