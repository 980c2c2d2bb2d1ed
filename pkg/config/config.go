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
	Scorer   ScorerConfig
	Mailjet  MailjetConfig
	Cart     CartConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	FrontendURL string
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

type JWTConfig struct {
	SecretKey string
	// bcrypt hash of the admin password; admin auth guards mutation routes
	AdminUsername     string
	AdminPasswordHash string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// ScorerConfig selects the relevance model backend. Mode "artifact" loads a
// local weight file, "remote" calls a scoring webservice.
type ScorerConfig struct {
	Mode         string
	ArtifactPath string
	RemoteURL    string
	Timeout      time.Duration
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type CartConfig struct {
	// carts idle past this cutoff get a reminder email and are cleared
	AbandonedAfter time.Duration
	CheckInterval  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	scorerTimeout, err := time.ParseDuration(getEnv("SCORER_TIMEOUT", "5s"))
	if err != nil {
		return nil, errors.New("invalid scorer timeout")
	}

	abandonedAfter, err := time.ParseDuration(getEnv("CART_ABANDONED_AFTER", "30m"))
	if err != nil {
		return nil, errors.New("invalid cart abandoned cutoff")
	}

	checkInterval, err := time.ParseDuration(getEnv("CART_CHECK_INTERVAL", "5m"))
	if err != nil {
		return nil, errors.New("invalid cart check interval")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "PolicyAdvisor API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			FrontendURL: getEnv("APP_FRONTEND_URL", "http://localhost:3000"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "policy_advisor"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:         getEnv("JWT_SECRET", ""),
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Scorer: ScorerConfig{
			Mode:         getEnv("SCORER_MODE", "artifact"),
			ArtifactPath: getEnv("SCORER_ARTIFACT_PATH", "./model/twotower.json"),
			RemoteURL:    getEnv("SCORER_REMOTE_URL", ""),
			Timeout:      scorerTimeout,
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", ""),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", ""),
		},
		Cart: CartConfig{
			AbandonedAfter: abandonedAfter,
			CheckInterval:  checkInterval,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.JWT.AdminPasswordHash == "" {
		return nil, errors.New("missing admin password hash")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Scorer.Mode != "artifact" && cfg.Scorer.Mode != "remote" {
		return nil, errors.New("scorer mode must be artifact or remote")
	}

	if cfg.Scorer.Mode == "remote" && cfg.Scorer.RemoteURL == "" {
		return nil, errors.New("missing remote scorer url")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
