package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "LUSHKA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv           = "LUSHKA_APP_ENV"
	EnvPort             = "LUSHKA_APP_PORT"
	EnvDBDriver         = "LUSHKA_DB_DRIVER"
	EnvDBDSN            = "LUSHKA_DB_DSN"
	EnvRedisURL         = "LUSHKA_REDIS_URL"
	EnvSessionSecret    = "LUSHKA_SESSION_SECRET"
	EnvSessionIssuer    = "LUSHKA_SESSION_ISSUER"
	EnvSessionTTL       = "LUSHKA_SESSION_TTL"
	EnvCartFreshness    = "LUSHKA_CART_FRESHNESS_WINDOW"
	EnvQuizDelay        = "LUSHKA_QUIZ_PROCESSING_DELAY"
	EnvAdvisorEnabled   = "LUSHKA_ADVISOR_ENABLED"
	EnvAdvisorAPIKey    = "LUSHKA_ADVISOR_API_KEY"
	EnvWhatsAppPhone    = "LUSHKA_WHATSAPP_PHONE"
	EnvCORSOrigins      = "LUSHKA_CORS_ORIGINS"
	EnvRateLimitWindow  = "LUSHKA_RATE_LIMIT_WINDOW"
	EnvRateLimitIPLimit = "LUSHKA_RATE_LIMIT_IP_LIMIT"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Session   SessionConfig
	Cart      CartConfig
	Quiz      QuizConfig
	Advisor   AdvisorConfig
	WhatsApp  WhatsAppConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUSHKA_APP_ENV" required:"true"`
	Port         string `envconfig:"LUSHKA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LUSHKA_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LUSHKA_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"LUSHKA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig is optional: without a DSN recommendation history is not persisted.
type DBConfig struct {
	DSN         string `envconfig:"LUSHKA_DB_DSN"`
	Driver      string `envconfig:"LUSHKA_DB_DRIVER" default:"postgres"`
	AutoMigrate bool   `envconfig:"LUSHKA_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"LUSHKA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"LUSHKA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"LUSHKA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUSHKA_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"LUSHKA_DB_SLOW_QUERY_THRESHOLD" default:"250ms"`
}

// Enabled reports whether a database has been configured.
func (db DBConfig) Enabled() bool {
	return strings.TrimSpace(db.DSN) != ""
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), "sqlite")
}

// RedisConfig is optional: without a URL or address cart snapshots live in process memory.
type RedisConfig struct {
	URL          string        `envconfig:"LUSHKA_REDIS_URL"`
	Address      string        `envconfig:"LUSHKA_REDIS_ADDR"`
	Password     string        `envconfig:"LUSHKA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUSHKA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUSHKA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUSHKA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUSHKA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUSHKA_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"LUSHKA_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a Redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SessionConfig struct {
	Secret string        `envconfig:"LUSHKA_SESSION_SECRET" required:"true"`
	Issuer string        `envconfig:"LUSHKA_SESSION_ISSUER" default:"lushka"`
	TTL    time.Duration `envconfig:"LUSHKA_SESSION_TTL" default:"720h"`
	Header string        `envconfig:"LUSHKA_SESSION_HEADER" default:"X-Lushka-Session"`
}

type CartConfig struct {
	FreshnessWindow time.Duration `envconfig:"LUSHKA_CART_FRESHNESS_WINDOW" default:"24h"`
	KeyPrefix       string        `envconfig:"LUSHKA_CART_KEY_PREFIX" default:"lushka_cart"`
	MaxSessions     int           `envconfig:"LUSHKA_CART_MAX_SESSIONS" default:"10000"`
}

type QuizConfig struct {
	ProcessingDelay time.Duration `envconfig:"LUSHKA_QUIZ_PROCESSING_DELAY" default:"1500ms"`
	IdleTTL         time.Duration `envconfig:"LUSHKA_QUIZ_IDLE_TTL" default:"24h"`
	MaxSessions     int           `envconfig:"LUSHKA_QUIZ_MAX_SESSIONS" default:"10000"`
}

type AdvisorConfig struct {
	Enabled bool          `envconfig:"LUSHKA_ADVISOR_ENABLED" default:"false"`
	APIKey  string        `envconfig:"LUSHKA_ADVISOR_API_KEY"`
	Model   string        `envconfig:"LUSHKA_ADVISOR_MODEL" default:"gemini-2.0-flash"`
	Timeout time.Duration `envconfig:"LUSHKA_ADVISOR_TIMEOUT" default:"8s"`
}

type WhatsAppConfig struct {
	BaseURL  string `envconfig:"LUSHKA_WHATSAPP_BASE_URL" default:"https://wa.me"`
	Phone    string `envconfig:"LUSHKA_WHATSAPP_PHONE" default:"+573143638924"`
	Timezone string `envconfig:"LUSHKA_WHATSAPP_TIMEZONE" default:"America/Bogota"`
}

type RateLimitConfig struct {
	Window  time.Duration `envconfig:"LUSHKA_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"LUSHKA_RATE_LIMIT_IP_LIMIT" default:"60"`
}

type CORSConfig struct {
	Origins []string      `envconfig:"LUSHKA_CORS_ORIGINS" default:"http://localhost:4200"`
	MaxAge  time.Duration `envconfig:"LUSHKA_CORS_MAX_AGE" default:"5m"`
}

func (c *Config) validate() error {
	if c.Advisor.Enabled && strings.TrimSpace(c.Advisor.APIKey) == "" {
		return fmt.Errorf("%s is required when %s is true", EnvAdvisorAPIKey, EnvAdvisorEnabled)
	}
	if c.Cart.FreshnessWindow <= 0 {
		return fmt.Errorf("%s must be positive", EnvCartFreshness)
	}
	if c.Quiz.ProcessingDelay < 0 {
		return fmt.Errorf("%s cannot be negative", EnvQuizDelay)
	}
	if c.Cart.MaxSessions < 0 || c.Quiz.MaxSessions < 0 {
		return fmt.Errorf("session registry bounds cannot be negative")
	}
	if c.DB.Enabled() && !c.DB.IsSQLite() && !strings.EqualFold(c.DB.Driver, "postgres") {
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, c.DB.Driver)
	}
	return nil
}
