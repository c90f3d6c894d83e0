package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-aoi-backend/errs"
)

// Settings is the process configuration, resolved once at startup.
type Settings struct {
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetime    time.Duration
	DBSlowQueryThreshold time.Duration
	DBCheckSchema        bool
	Port                 string
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	ShutdownTimeout      time.Duration
	AcceptedOrigins      []string
	LogLevel             string
	LogFormat            string
	LogFile              string
	LogFileMaxSizeMB     int
	LogFileMaxBackups    int
	LogFileMaxAgeDays    int
}

// Load reads .env (if any) and the environment.
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}
	return FromMap(New())
}

// FromMap resolves Settings from an environment map.
func FromMap(c map[string]string) (Settings, error) {
	s := Settings{
		DBMaxOpenConns:       GetInt(c, "DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:       GetInt(c, "DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime:    GetDuration(c, "DB_CONN_MAX_LIFETIME_MINUTES", time.Minute, 30),
		DBSlowQueryThreshold: GetDuration(c, "DB_SLOW_QUERY_MS", time.Millisecond, 200),
		DBCheckSchema:        GetBool(c, "DB_CHECK_SCHEMA", true),
		Port:                 GetString(c, "PORT", "8080"),
		ReadTimeout:          GetDuration(c, "READ_TIMEOUT_SECONDS", time.Second, 180),
		WriteTimeout:         GetDuration(c, "WRITE_TIMEOUT_SECONDS", time.Second, 180),
		IdleTimeout:          GetDuration(c, "IDLE_TIMEOUT_SECONDS", time.Second, 180),
		ShutdownTimeout:      GetDuration(c, "SHUTDOWN_TIMEOUT_SECONDS", time.Second, 30),
		AcceptedOrigins:      GetList(c, "ACCEPTED_ORIGINS", []string{"*"}),
		LogLevel:             GetString(c, "LOG_LEVEL", "info"),
		LogFormat:            GetString(c, "LOG_FORMAT", "json"),
		LogFile:              GetString(c, "LOG_FILE", ""),
		LogFileMaxSizeMB:     GetInt(c, "LOG_FILE_MAX_SIZE_MB", 10),
		LogFileMaxBackups:    GetInt(c, "LOG_FILE_MAX_BACKUPS", 3),
		LogFileMaxAgeDays:    GetInt(c, "LOG_FILE_MAX_AGE_DAYS", 28),
	}

	dsn, err := databaseURL(c)
	if err != nil {
		return Settings{}, err
	}
	s.DatabaseURL = dsn

	if s.DBMaxOpenConns < 1 {
		return Settings{}, errs.NewConfigInvalidError("DB_MAX_OPEN_CONNS", "must be at least 1")
	}
	return s, nil
}

// Addr is the listen address for the HTTP server.
func (s Settings) Addr() string {
	return fmt.Sprintf("0.0.0.0:%s", s.Port)
}

// databaseURL prefers DATABASE_URL and otherwise assembles one from the DB_* parts.
func databaseURL(c map[string]string) (string, error) {
	if dsn := GetString(c, "DATABASE_URL", ""); dsn != "" {
		return dsn, nil
	}

	host := GetString(c, "DB_HOST", "")
	if host == "" {
		return "", errs.NewConfigMissingError("DATABASE_URL")
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(GetString(c, "DB_USER", "postgres"), GetString(c, "DB_PASSWORD", "")),
		Host:   fmt.Sprintf("%s:%s", host, GetString(c, "DB_PORT", "5432")),
		Path:   "/" + GetString(c, "DB_NAME", "postgres"),
	}
	q := u.Query()
	q.Set("sslmode", GetString(c, "DB_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
