package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
)

type builtStatement struct {
	sql  string
	vars []interface{}
}

// mysqlDryRun opens a MySQL-dialect handle that builds statements without a
// server and records each SELECT it would send.
func mysqlDryRun(t *testing.T) (*gorm.DB, *[]builtStatement) {
	t.Helper()

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "biblio:secret@tcp(127.0.0.1:3306)/biblioteca?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var built []builtStatement
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		built = append(built, builtStatement{
			sql:  tx.Statement.SQL.String(),
			vars: append([]interface{}(nil), tx.Statement.Vars...),
		})
	}))
	return db, &built
}

func TestLoanLocksRenderForUpdate(t *testing.T) {
	db, built := mysqlDryRun(t)
	ctx := context.Background()
	repo := repositories.NewPrestamoRepository(db)

	_, err := repo.LockPrestamo(ctx, 7)
	require.NoError(t, err)
	_, err = repo.LockDetalle(ctx, 11)
	require.NoError(t, err)
	_, err = repo.CountPendientes(ctx, 7)
	require.NoError(t, err)

	require.Len(t, *built, 3)
	assert.Contains(t, (*built)[0].sql, "FROM `prestamos`")
	assert.Contains(t, (*built)[1].sql, "FROM `prestamo_detalles`")
	assert.Contains(t, (*built)[2].sql, "count(*)")
	for _, st := range *built {
		assert.Contains(t, st.sql, "FOR UPDATE")
	}
}

func TestHeaderLookupIsPlainRead(t *testing.T) {
	db, built := mysqlDryRun(t)

	_, err := repositories.NewPrestamoRepository(db).HeaderIDOfDetalle(context.Background(), 11)
	require.NoError(t, err)

	require.Len(t, *built, 1)
	assert.NotContains(t, (*built)[0].sql, "FOR UPDATE")
}

func TestLockManyLocksInAscendingOrder(t *testing.T) {
	db, built := mysqlDryRun(t)
	ctx := context.Background()

	_, err := repositories.NewMaterialBibliograficoRepository(db).LockMany(ctx, []uint{9, 3, 9})
	require.NoError(t, err)
	_, err = repositories.NewMaterialFisicoRepository(db).LockMany(ctx, []uint{5, 2})
	require.NoError(t, err)

	require.Len(t, *built, 2)

	assert.Contains(t, (*built)[0].sql, "FROM `materiales_bibliograficos`")
	assert.Contains(t, (*built)[0].sql, "ORDER BY id ASC FOR UPDATE")
	assert.Equal(t, []interface{}{uint(3), uint(9)}, (*built)[0].vars)

	assert.Contains(t, (*built)[1].sql, "FROM `materiales_fisicos`")
	assert.Contains(t, (*built)[1].sql, "FOR UPDATE")
	assert.Equal(t, []interface{}{uint(2), uint(5)}, (*built)[1].vars)
}

func TestLockManyWithoutIDsSkipsQuery(t *testing.T) {
	db, built := mysqlDryRun(t)

	locked, err := repositories.NewMaterialBibliograficoRepository(db).LockMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, locked)
	assert.Empty(t, *built)
}
