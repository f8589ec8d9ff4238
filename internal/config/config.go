package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/stackify/marketplace-engine/internal/log"
	"go.uber.org/zap"
)

type Config struct {
	Env       string
	Network   string
	Index     string
	Debug     bool
	LogPath   string
	SentryDsn string

	ApiPort    string
	HealthPort string

	Marketplace   MarketplaceConfig
	Ledger        LedgerConfig
	ElasticSearch ElasticSearchConfig
	Amqp          AmqpConfig
}

type MarketplaceConfig struct {
	Owner        string
	FeeRecipient string
	FeeBps       uint64
}

type LedgerConfig struct {
	Mode    string
	Url     string
	Timeout int
	Debug   bool
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

type AmqpConfig struct {
	Enabled bool
	Uri     string
}

func Init(app string) {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger(app)
}

func initLogger(app string) {
	cfg := Get()
	log.NewLogger(fmt.Sprintf("%s/%s.log", cfg.LogPath, app), cfg.Debug, cfg.SentryDsn)
}

func Get() *Config {
	return &Config{
		Env:        getString("ENV", ""),
		Network:    getString("NETWORK", "stacks"),
		Index:      getString("INDEX_NAME", "marketplace"),
		Debug:      getBool("DEBUG", false),
		LogPath:    getString("LOG_PATH", "./var/logs"),
		SentryDsn:  getString("SENTRY_DSN", ""),
		ApiPort:    getString("API_PORT", "8080"),
		HealthPort: getString("HEALTH_PORT", "8090"),
		Marketplace: MarketplaceConfig{
			Owner:        getString("MARKETPLACE_OWNER", ""),
			FeeRecipient: getString("MARKETPLACE_FEE_RECIPIENT", ""),
			FeeBps:       getUint64("MARKETPLACE_FEE_BPS", 250),
		},
		Ledger: LedgerConfig{
			Mode:    getString("LEDGER_MODE", "memory"),
			Url:     getString("LEDGER_URL", ""),
			Timeout: getInt("LEDGER_TIMEOUT", 30),
			Debug:   getBool("LEDGER_DEBUG", false),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "./data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
		Amqp: AmqpConfig{
			Enabled: getBool("AMQP_ENABLED", false),
			Uri:     getString("AMQP_URI", ""),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}

	return val
}

func getUint64(key string, defaultValue uint64) uint64 {
	valStr := getString(key, "")
	val, err := strconv.ParseUint(valStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return val
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
