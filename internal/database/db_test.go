package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/greeting-service/internal/config"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.DBConfig
		wantAddr string
	}{
		{"ipv4", config.DBConfig{User: "app", Host: "10.0.0.5", Port: "3306", Name: "greeting"}, "10.0.0.5:3306"},
		{"hostname", config.DBConfig{User: "app", Pass: "secret", Host: "db", Port: "3307", Name: "greeting"}, "db:3307"},
		{"ipv6", config.DBConfig{User: "app", Host: "::1", Port: "3306", Name: "greeting"}, "[::1]:3306"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := mysql.ParseDSN(DSN(tt.cfg))
			require.NoError(t, err)
			assert.Equal(t, "tcp", parsed.Net)
			assert.Equal(t, tt.wantAddr, parsed.Addr)
			assert.Equal(t, tt.cfg.User, parsed.User)
			assert.Equal(t, tt.cfg.Pass, parsed.Passwd)
			assert.Equal(t, "greeting", parsed.DBName)
			assert.True(t, parsed.ParseTime)
			assert.Equal(t, 2*time.Second, parsed.Timeout)
			assert.Equal(t, "utf8mb4_general_ci", parsed.Collation)
			assert.Equal(t, time.UTC, parsed.Loc)
		})
	}
}

func TestOpenDoesNotDial(t *testing.T) {
	db, err := Open(config.DBConfig{User: "app", Host: "127.0.0.1", Port: "1", Name: "x"})
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
