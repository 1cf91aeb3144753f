package config

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(DatabaseConfig{
		Host:     "db.internal",
		Port:     "3306",
		User:     "biblio",
		Password: "secret",
		DBName:   "biblioteca",
	})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)

	assert.Equal(t, "db.internal:3306", parsed.Addr)
	assert.Equal(t, "biblioteca", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	// sent as SET transaction_isolation='READ-COMMITTED' on every new connection
	assert.Equal(t, "'READ-COMMITTED'", parsed.Params["transaction_isolation"])
}
