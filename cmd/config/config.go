package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "insurance_server"

var loadConfigOnce sync.Once
var configInstance AppConfig

func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		cfg, err := Load("server", "config", "/config")
		if err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = cfg
	})

	return configInstance
}

// Load reads the named config file from the first matching path. Values can
// be overridden with INSURANCE_SERVER_<SECTION>_<KEY> environment variables.
func Load(name string, paths ...string) (AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigName(name)
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return AppConfig{}, err
	}

	return AppConfig{
		General: GeneralConfig{
			LogLevel:    v.GetString("general.log_level"),
			Environment: v.GetString("general.environment"),
		},
		HTTP: HTTPConfig{
			Addr:           v.GetString("http.addr"),
			AllowedOrigins: v.GetStringSlice("http.allowed_origins"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("database.driver"),
			URL:    v.GetString("database.url"),
			DSN:    v.GetString("database.dsn"),
			Seed:   v.GetBool("database.seed"),
		},
		Cache: CacheConfig{
			Driver: v.GetString("cache.driver"),
			TTL:    v.GetDuration("cache.ttl"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Kafka: KafkaConfig{
			Brokers:           v.GetStringSlice("kafka.brokers"),
			Group:             v.GetString("kafka.group"),
			SchemaRegistryURL: v.GetString("kafka.schema_registry_url"),
		},
		Forms: FormsConfig{
			OptionsTimeout:       v.GetDuration("forms.options_timeout"),
			CacheRefreshSchedule: v.GetString("forms.cache_refresh_schedule"),
		},
		Notifications: NotificationsConfig{
			MailerSendAPIKey: v.GetString("notifications.mailersend_api_key"),
			FromEmail:        v.GetString("notifications.from_email"),
			FromName:         v.GetString("notifications.from_name"),
			Recipient:        v.GetString("notifications.recipient"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.environment", "local")
	v.SetDefault("http.addr", ":4000")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "insurance.db")
	v.SetDefault("database.seed", true)
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("kafka.group", "insurance-server")
	v.SetDefault("forms.options_timeout", 5*time.Second)
	v.SetDefault("forms.cache_refresh_schedule", "@every 5m")
	v.SetDefault("notifications.from_name", "Insurance Portal")
}

type AppConfig struct {
	General  GeneralConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Forms    FormsConfig

	Notifications NotificationsConfig
}

type GeneralConfig struct {
	LogLevel    string
	Environment string
}

type HTTPConfig struct {
	Addr           string
	AllowedOrigins []string
}

// DatabaseConfig selects the storage backend. Driver is "sqlite" or "postgres";
// URL is only used by postgres to probe readiness through pgx.
type DatabaseConfig struct {
	Driver string
	URL    string
	DSN    string
	Seed   bool
}

type CacheConfig struct {
	Driver string
	TTL    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers           []string
	Group             string
	SchemaRegistryURL string
}

type FormsConfig struct {
	OptionsTimeout       time.Duration
	CacheRefreshSchedule string
}

// NotificationsConfig enables submission emails when MailerSendAPIKey is set.
type NotificationsConfig struct {
	MailerSendAPIKey string
	FromEmail        string
	FromName         string
	Recipient        string
}

func (c NotificationsConfig) Enabled() bool {
	return c.MailerSendAPIKey != "" && c.Recipient != ""
}
