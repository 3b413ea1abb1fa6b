package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища.
const (
	StoreDriverPostgrest = "postgrest"
	StoreDriverPostgres  = "postgres"
	StoreDriverSQLite    = "sqlite"
	StoreDriverMemory    = "memory"
)

type RESTConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// StoreConfig - куда ходит репозиторий объектов.
type StoreConfig struct {
	Driver string
	// размещенный PostgREST API (Supabase)
	SupabaseURL string
	SupabaseKey string
	Table       string
	Timeout     time.Duration
	// прямое подключение к PostgreSQL
	DatabaseURL string
	// локальная база
	SQLitePath string
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

// ScreenConfig - настройки страницы портфеля.
type ScreenConfig struct {
	// RentalEstimatePCM - сумма карточки "Unrealised Rental", фунтов в месяц.
	RentalEstimatePCM int
}

// AppConfig хранит всю конфигурацию приложения.
type AppConfig struct {
	AppName      string
	Rest         RESTConfig
	Store        StoreConfig
	RabbitMQ     RabbitMQConfig
	StdoutLogger StdoutLogConfig
	FluentBit    FluentBitConfig
	Screen       ScreenConfig
}

// LoadConfig загружает .env (если он есть) и читает переменные окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}
	cfg.AppName = getEnvAsString("APP_NAME", "portfolio-service")

	cfg.Rest.Port = getEnvAsString("PORT", "8080")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})

	cfg.Store.Driver = strings.ToLower(getEnvAsString("STORE_DRIVER", StoreDriverPostgrest))
	cfg.Store.SupabaseURL = os.Getenv("SUPABASE_URL")
	cfg.Store.SupabaseKey = os.Getenv("SUPABASE_KEY")
	cfg.Store.Table = getEnvAsString("SUPABASE_TABLE", "properties")
	cfg.Store.Timeout = getEnvAsDuration("STORE_TIMEOUT", 0)
	cfg.Store.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.Store.SQLitePath = getEnvAsString("SQLITE_PATH", "portfolio.db")

	switch cfg.Store.Driver {
	case StoreDriverPostgrest:
		if cfg.Store.SupabaseURL == "" {
			return nil, fmt.Errorf("SUPABASE_URL environment variable is required for store driver %q", cfg.Store.Driver)
		}
		if cfg.Store.SupabaseKey == "" {
			log.Println("WARNING: SUPABASE_KEY is not set, requests will be sent without an API key.")
		}
	case StoreDriverPostgres:
		if cfg.Store.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for store driver %q", cfg.Store.Driver)
		}
	case StoreDriverSQLite, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", "portfolio_exchange")
	if cfg.RabbitMQ.Enabled && cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	cfg.Screen.RentalEstimatePCM = getEnvAsInt("RENTAL_ESTIMATE_PCM", 6000)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение по умолчанию, если переменная не задана или не число.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration принимает "15s", "500ms" или целое число секунд.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(valStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
