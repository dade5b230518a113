package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Relay    RelayConfig
	Gateway  GatewayConfig
}

type ServerConfig struct {
	Port string
}

// BackendConfig is the endpoint + public key pair of the hosted backend.
type BackendConfig struct {
	URL            string
	AnonKey        string
	SiteOrigin     string
	RedirectAnchor string
}

// Configured reports whether both halves of the endpoint/key pair are set.
func (c BackendConfig) Configured() bool {
	return c.URL != "" && c.AnonKey != ""
}

type StorageConfig struct {
	Bucket          string
	Prefix          string
	S3Endpoint      string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

func (c StorageConfig) Configured() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RelayConfig struct {
	URL       string
	AccessKey string
	ToEmail   string
	FromName  string
	Timeout   time.Duration
}

// Configured requires the recipient too: alerts go to the couple, never back to the uploader.
func (c RelayConfig) Configured() bool {
	return c.URL != "" && c.AccessKey != "" && c.ToEmail != ""
}

type GatewayConfig struct {
	// PhotoOrderAscending flips guest photo listing between oldest-first and newest-first.
	PhotoOrderAscending    bool
	CleanupOrphanedUploads bool
	// NotifyQueue is "memory" or "redis".
	NotifyQueue string
}

var AppConfig *Config

func LoadConfig() *Config {
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   ServerConfig{Port: getEnv("SERVER_PORT", "8080")},
		Backend:  GetBackendConfig(),
		Storage:  GetStorageConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Relay:    GetRelayConfig(),
		Gateway:  GetGatewayConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		URL:      os.Getenv("TEST_DATABASE_URL"),
		Host:     "localhost",
		Port:     "5433",
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnv("TEST_REDIS_PORT", "6380"),
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Gateway:  GatewayConfig{PhotoOrderAscending: true, NotifyQueue: "memory"},
	}
}

func GetBackendConfig() BackendConfig {
	return BackendConfig{
		URL:            strings.TrimRight(getEnv("BACKEND_URL", ""), "/"),
		AnonKey:        getEnv("BACKEND_ANON_KEY", ""),
		SiteOrigin:     strings.TrimRight(getEnv("SITE_ORIGIN", "http://localhost:8080"), "/"),
		RedirectAnchor: strings.TrimPrefix(getEnv("AUTH_REDIRECT_ANCHOR", "trivia"), "#"),
	}
}

func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Bucket:          getEnv("STORAGE_BUCKET", "wedding-photos"),
		Prefix:          strings.Trim(getEnv("STORAGE_PREFIX", "guest_uploads"), "/"),
		S3Endpoint:      getEnv("STORAGE_S3_ENDPOINT", ""),
		Region:          getEnv("STORAGE_S3_REGION", "us-east-1"),
		AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "require"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetRelayConfig() RelayConfig {
	timeout, err := time.ParseDuration(getEnv("RELAY_TIMEOUT", "10s"))
	if err != nil {
		panic(err)
	}

	return RelayConfig{
		URL:       getEnv("RELAY_URL", "https://api.web3forms.com/submit"),
		AccessKey: getEnv("RELAY_ACCESS_KEY", ""),
		ToEmail:   getEnv("RELAY_TO_EMAIL", ""),
		FromName:  getEnv("RELAY_FROM_NAME", "Wedding Website"),
		Timeout:   timeout,
	}
}

func GetGatewayConfig() GatewayConfig {
	return GatewayConfig{
		PhotoOrderAscending:    !strings.EqualFold(getEnv("PHOTO_ORDER", "asc"), "desc"),
		CleanupOrphanedUploads: getEnvBool("CLEANUP_ORPHANED_UPLOADS", false),
		NotifyQueue:            strings.ToLower(getEnv("NOTIFY_QUEUE", "memory")),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}
