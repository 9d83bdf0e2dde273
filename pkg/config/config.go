package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable this service reads.
	EnvPrefix = "BUDUN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "BUDUN_DB_DSN"
	EnvDBHost = "BUDUN_DB_HOST"
	EnvDBUser = "BUDUN_DB_USER"
	EnvDBName = "BUDUN_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cron         CronConfig
	Bootstrap    BootstrapConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BUDUN_APP_ENV" required:"true"`
	Port         string `envconfig:"BUDUN_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BUDUN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BUDUN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BUDUN_DB_DSN"`
	Driver string `envconfig:"BUDUN_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BUDUN_DB_HOST"`
	Port     int    `envconfig:"BUDUN_DB_PORT" default:"5432"`
	User     string `envconfig:"BUDUN_DB_USER"`
	Password string `envconfig:"BUDUN_DB_PASSWORD"`
	Name     string `envconfig:"BUDUN_DB_NAME"`
	SSLMode  string `envconfig:"BUDUN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BUDUN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BUDUN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BUDUN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BUDUN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BUDUN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BUDUN_REDIS_ADDR"`
	Password     string        `envconfig:"BUDUN_REDIS_PASSWORD"`
	DB           int           `envconfig:"BUDUN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BUDUN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BUDUN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BUDUN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BUDUN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BUDUN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BUDUN_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BUDUN_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"BUDUN_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"BUDUN_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BUDUN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BUDUN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BUDUN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BUDUN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BUDUN_ARGON_KEY_LEN" default:"32"`
}

type CronConfig struct {
	Interval          time.Duration `envconfig:"BUDUN_CRON_INTERVAL" default:"24h"`
	RenewalWindowDays int           `envconfig:"BUDUN_CRON_RENEWAL_WINDOW_DAYS" default:"14"`
	CrossSellScanDays int           `envconfig:"BUDUN_CRON_CROSS_SELL_SCAN_DAYS" default:"60"`
	LockTTL           time.Duration `envconfig:"BUDUN_CRON_LOCK_TTL" default:"25h"`
}

// BootstrapConfig seeds the very first admin account. The password carries no
// default on purpose: when it is empty, nothing is created.
type BootstrapConfig struct {
	AdminUsername string `envconfig:"BUDUN_BOOTSTRAP_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"BUDUN_BOOTSTRAP_ADMIN_PASSWORD"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BUDUN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BUDUN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
