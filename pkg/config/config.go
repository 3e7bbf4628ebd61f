package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Storage      StorageConfig
	Uploads      UploadsConfig
	Scanner      ScannerConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Storage.UsesDatabase() {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKTRACK_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKTRACK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOCKTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"STOCKTRACK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKTRACK_DB_DSN"`
	Driver string `envconfig:"STOCKTRACK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKTRACK_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKTRACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKTRACK_DB_USER"`
	LegacyPassword string `envconfig:"STOCKTRACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKTRACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKTRACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKTRACK_REDIS_URL"`
	PoolSize     int           `envconfig:"STOCKTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StorageConfig selects the repository backend the services run on.
type StorageConfig struct {
	Driver string `envconfig:"STOCKTRACK_STORAGE_DRIVER" default:"postgres"`
}

func (s StorageConfig) UsesDatabase() bool {
	return !strings.EqualFold(s.Driver, StorageDriverMemory)
}

type UploadsConfig struct {
	Dir   string `envconfig:"STOCKTRACK_UPLOADS_DIR" default:"uploads"`
	MaxMB int    `envconfig:"STOCKTRACK_UPLOADS_MAX_MB" default:"10"`
}

// MaxBytes converts the configured upload cap to bytes.
func (u UploadsConfig) MaxBytes() int64 {
	return int64(u.MaxMB) << 20
}

type ScannerConfig struct {
	Interval time.Duration `envconfig:"STOCKTRACK_SCANNER_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"STOCKTRACK_SCANNER_LOCK_TTL" default:"55m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOCKTRACK_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKTRACK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
