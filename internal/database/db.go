package database

import (
	"database/sql"
	"net"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/greeting-service/internal/config"
)

// DSN builds the go-sql-driver/mysql connection string for cfg.  The
// address goes through net.JoinHostPort so IPv6 hosts are bracketed.
func DSN(cfg config.DBConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	// parseTime=true -> DATETIME -> time.Time | Timeout bounds the dial
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Timeout = 2 * time.Second
	mc.Collation = "utf8mb4_general_ci"
	return mc.FormatDSN()
}

// Open prepares a small MySQL pool.  sql.Open does not dial, so a database
// that is down at startup only shows up as a failing readiness check.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, errors.Wrapf(err, "open mysql %s", net.JoinHostPort(cfg.Host, cfg.Port))
	}

	// Pool settings; the service only pings.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
