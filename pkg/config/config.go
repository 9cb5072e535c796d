package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Source   SourceConfig
	Redis    RedisConfig
	Alerts   AlertsConfig
	Monitor  MonitorConfig
	Telegram TelegramConfig
	Metrics  MetricsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT. Los tokens los emite el backend de inventario
// con el mismo secreto; aquí solo se validan.
type JWTConfig struct {
	Secret string
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Tipos de fuente de inventario.
const (
	SourcePostgres = "postgres"
	SourceREST     = "rest"
)

// SourceConfig de dónde se leen las colecciones: "postgres" (tablas locales) o
// "rest" (API del backend de inventario).
type SourceConfig struct {
	Kind     string
	BaseURL  string
	APIToken string
	Timeout  time.Duration
	Retries  int
}

// RedisConfig caché de colecciones y, opcionalmente, persistencia de reconocimientos.
// Addr vacío = Redis deshabilitado.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// Almacenes de reconocimiento.
const (
	AckStoreMemory   = "memory"
	AckStoreRedis    = "redis"
	AckStorePostgres = "postgres"
)

// AlertsConfig umbrales del derivador y almacén de reconocimientos.
type AlertsConfig struct {
	ExpiringSoonDays  int
	ExpiringWatchDays int
	LowStockThreshold string // decimal
	AckStore          string // memory | redis | postgres
}

// MonitorConfig lazo periódico que notifica alertas críticas nuevas.
type MonitorConfig struct {
	Enabled  bool
	Interval time.Duration
}

// TelegramConfig destino de las notificaciones. Token vacío = solo log.
type TelegramConfig struct {
	Token  string
	ChatID int64
}

// MetricsConfig exposición de métricas Prometheus en /metrics.
type MetricsConfig struct {
	Enabled bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, SOURCE_KIND, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "medstock-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "medstock"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "medstock"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Source: SourceConfig{
			Kind:     strings.ToLower(getString(v, "SOURCE_KIND", SourcePostgres)),
			BaseURL:  getString(v, "SOURCE_BASE_URL", ""),
			APIToken: getString(v, "SOURCE_API_TOKEN", ""),
			Timeout:  getDuration(v, "SOURCE_TIMEOUT", 15*time.Second),
			Retries:  getInt(v, "SOURCE_RETRIES", 2),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			CacheTTL: getDuration(v, "REDIS_CACHE_TTL", time.Minute),
		},
		Alerts: AlertsConfig{
			ExpiringSoonDays:  getInt(v, "ALERTS_EXPIRING_SOON_DAYS", 30),
			ExpiringWatchDays: getInt(v, "ALERTS_EXPIRING_WATCH_DAYS", 90),
			LowStockThreshold: getString(v, "ALERTS_LOW_STOCK_THRESHOLD", "5"),
			AckStore:          strings.ToLower(getString(v, "ALERTS_ACK_STORE", AckStoreMemory)),
		},
		Monitor: MonitorConfig{
			Enabled:  getBool(v, "MONITOR_ENABLED", false),
			Interval: getDuration(v, "MONITOR_INTERVAL", 5*time.Minute),
		},
		Telegram: TelegramConfig{
			Token:  getString(v, "TELEGRAM_TOKEN", ""),
			ChatID: int64(getInt(v, "TELEGRAM_CHAT_ID", 0)),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourcePostgres:
	case SourceREST:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("config: SOURCE_BASE_URL requerido con SOURCE_KIND=rest")
		}
	default:
		return fmt.Errorf("config: SOURCE_KIND desconocido %q", c.Source.Kind)
	}
	switch c.Alerts.AckStore {
	case AckStoreMemory, AckStorePostgres:
	case AckStoreRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("config: ALERTS_ACK_STORE=redis requiere REDIS_ADDR")
		}
	default:
		return fmt.Errorf("config: ALERTS_ACK_STORE desconocido %q", c.Alerts.AckStore)
	}
	if c.Monitor.Enabled && c.Monitor.Interval <= 0 {
		return fmt.Errorf("config: MONITOR_INTERVAL debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// getDuration acepta "90s", "5m" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
