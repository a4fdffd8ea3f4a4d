package config // package config loads application configuration from environment variables

import (
	"net"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Every field has a default
// so the service starts with no environment at all and listens on
// 0.0.0.0:5000.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Host            string        // interface to bind; empty or 0.0.0.0 means all
	Port            string        // HTTP port to listen on
	ShutdownTimeout time.Duration // grace period for in-flight requests on SIGTERM
	ReadyTimeout    time.Duration // deadline for each readiness check
	DB              DBConfig      // optional MySQL readiness target
}

// DBConfig describes the optional MySQL instance checked by /ready.  An
// empty Host disables the check.
type DBConfig struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// Enabled reports whether a database host was configured.
func (d DBConfig) Enabled() bool { return d.Host != "" }

// Load reads an optional .env file and then the environment.  A missing
// .env file is not an error; variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:             envStr("APP_ENV", "dev"),
		Host:            envStr("APP_HOST", "0.0.0.0"),
		Port:            envStr("APP_PORT", "5000"),
		ShutdownTimeout: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),
		ReadyTimeout:    envDur("READY_TIMEOUT", 2*time.Second),
		DB: DBConfig{
			User: envStr("DB_USER", "root"),
			Pass: envStr("DB_PASS", ""),
			Host: envStr("DB_HOST", ""),
			Port: envStr("DB_PORT", "3306"),
			Name: envStr("DB_NAME", ""),
		},
	}
}

// Addr is the listen address passed to echo.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
