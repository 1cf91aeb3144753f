package testdb

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
)

// MySQLDSNEnv names the variable holding the DSN of a disposable MySQL schema
const MySQLDSNEnv = "BIBLIOTECA_TEST_MYSQL_DSN"

// truncated lists the tables emptied before a MySQL test, children first
var truncated = []string{
	"prestamo_detalles", "prestamos",
	"autor_material", "materiales_virtuales", "materiales_fisicos", "materiales_bibliograficos",
	"categorias", "autores", "lectores",
	"refresh_tokens", "usuarios",
}

// OpenMySQL connects to the schema named by BIBLIOTECA_TEST_MYSQL_DSN, migrates
// it and empties every table. The test is skipped when the variable is unset.
// Unlike Open, the pool has several connections, so transactions really
// interleave and row locks decide the order.
func OpenMySQL(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(MySQLDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", MySQLDSNEnv)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	// FOREIGN_KEY_CHECKS is per session, so pin one connection
	err = db.Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SET FOREIGN_KEY_CHECKS = 0").Error; err != nil {
			return err
		}
		for _, table := range truncated {
			if err := conn.Exec("TRUNCATE TABLE " + table).Error; err != nil {
				return err
			}
		}
		return conn.Exec("SET FOREIGN_KEY_CHECKS = 1").Error
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
