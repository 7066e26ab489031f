package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/constants"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
)

// Assistant providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port    string
	GinMode string

	StoreBackend string
	DataDir      string
	SQLitePath   string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string

	RedisHost     string
	RedisPort     string
	SessionSecret string

	AssistantProvider    string
	GeminiAPIKey         string
	GeminiEndpoint       string
	GeminiModel          string
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAIBaseURL        string
	AssistantMaxAttempts int
	AssistantBackoffUnit time.Duration
	AssistantHTTPTimeout time.Duration
}

// Load reads configuration from the environment. If CONFIG_FILE names a YAML
// file, its values (keyed by the lower-cased variable name, e.g.
// "store_backend") are used for variables that are not set in the
// environment.
func Load() *Config {
	var file map[string]string
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		values, err := LoadFile(path)
		if err != nil {
			log.Printf("Ignoring config file: %v", err)
		}
		file = values
	}
	return build(file)
}

// LoadFile reads a flat YAML mapping of configuration values.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		values[strings.ToLower(k)] = fmt.Sprint(v)
	}
	return values, nil
}

func build(file map[string]string) *Config {
	get := func(key, defaultValue string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		if value, ok := file[strings.ToLower(key)]; ok && value != "" {
			return value
		}
		return defaultValue
	}

	dataDir := get("DATA_DIR", "./data")
	storeBackend := strings.ToLower(get("STORE_BACKEND", BackendFile))

	return &Config{
		Port:    get("PORT", "8080"),
		GinMode: get("GIN_MODE", "debug"),

		StoreBackend: storeBackend,
		DataDir:      dataDir,
		SQLitePath:   get("SQLITE_PATH", dataDir+"/tasks.db"),
		DBHost:       get("DB_HOST", "localhost"),
		DBPort:       get("DB_PORT", defaultDBPort(storeBackend)),
		DBUser:       get("DB_USER", "taskuser"),
		DBPassword:   get("DB_PASSWORD", "taskpassword"),
		DBName:       get("DB_NAME", "task_manager"),

		RedisHost:     get("REDIS_HOST", ""),
		RedisPort:     get("REDIS_PORT", "6379"),
		SessionSecret: get("SESSION_SECRET", "default-secret-key-change-me"),

		AssistantProvider:    strings.ToLower(get("ASSISTANT_PROVIDER", ProviderGemini)),
		GeminiAPIKey:         get("GEMINI_API_KEY", ""),
		GeminiEndpoint:       get("GEMINI_ENDPOINT", ""),
		GeminiModel:          get("GEMINI_MODEL", ""),
		OpenAIAPIKey:         get("OPENAI_API_KEY", ""),
		OpenAIModel:          get("OPENAI_MODEL", ""),
		OpenAIBaseURL:        get("OPENAI_BASE_URL", ""),
		AssistantMaxAttempts: parseInt("ASSISTANT_MAX_ATTEMPTS", get("ASSISTANT_MAX_ATTEMPTS", ""), constants.DefaultAssistantMaxAttempts),
		AssistantBackoffUnit: parseDuration("ASSISTANT_BACKOFF_UNIT", get("ASSISTANT_BACKOFF_UNIT", ""), constants.DefaultAssistantBackoffUnit),
		AssistantHTTPTimeout: parseDuration("ASSISTANT_HTTP_TIMEOUT", get("ASSISTANT_HTTP_TIMEOUT", ""), 0),
	}
}

func defaultDBPort(backend string) string {
	if backend == BackendPostgres {
		return "5432"
	}
	return "3306"
}

// AssistantConfigured reports whether the selected provider has a key.
func (c *Config) AssistantConfigured() bool {
	if c.AssistantProvider == ProviderOpenAI {
		return c.OpenAIAPIKey != ""
	}
	return c.GeminiAPIKey != ""
}

func parseInt(key, value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func parseDuration(key, value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
