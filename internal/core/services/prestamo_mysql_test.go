//go:build integration

package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/testdb"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
)

// Run with: BIBLIOTECA_TEST_MYSQL_DSN='user:pass@tcp(127.0.0.1:3306)/biblioteca_test?parseTime=True&transaction_isolation=%27READ-COMMITTED%27' \
//   go test -tags integration ./internal/core/services/

const mysqlRounds = 20

func TestMySQL_ConcurrentSiblingReturnsCloseHeader(t *testing.T) {
	e := loanEnvFor(newFixtureOn(t, testdb.OpenMySQL(t), "General"), "operador@uni.edu")

	for round := 0; round < mysqlRounds; round++ {
		b := e.material(fmt.Sprintf("B%02d", round))
		c1 := e.copia(b.ID, "C1", domain.EstadoDisponible)
		c2 := e.copia(b.ID, "C2", domain.EstadoDisponible)
		prestamo, err := e.lend(e.lector(fmt.Sprintf("R%02d", round)).ID,
			fisicoDetalle(b.ID, c1.ID), fisicoDetalle(b.ID, c2.ID))
		require.NoError(t, err)

		ids := []uint{prestamo.Detalles[0].ID, prestamo.Detalles[1].ID}
		if round%2 == 1 {
			ids[0], ids[1] = ids[1], ids[0]
		}
		for _, err := range e.returnAll(ids...) {
			require.NoError(t, err)
		}

		header := e.reloadPrestamo(prestamo.ID)
		assert.Equalf(t, string(domain.PrestamoDevuelto), header.Estado, "round %d", round)
		assert.NotNilf(t, header.FechaDevolucion, "round %d", round)
	}
}

func TestMySQL_ConcurrentLoansNeverShareACopy(t *testing.T) {
	e := loanEnvFor(newFixtureOn(t, testdb.OpenMySQL(t), "General"), "operador@uni.edu")

	for round := 0; round < mysqlRounds; round++ {
		b := e.material(fmt.Sprintf("B%02d", round))
		copia := e.copia(b.ID, "C1", domain.EstadoDisponible)
		lectores := []*models.Lector{
			e.lector(fmt.Sprintf("R%02da", round)),
			e.lector(fmt.Sprintf("R%02db", round)),
			e.lector(fmt.Sprintf("R%02dc", round)),
		}

		start := make(chan struct{})
		errs := make(chan error, len(lectores))
		for _, l := range lectores {
			go func(lectorID uint) {
				<-start
				_, err := e.lend(lectorID, fisicoDetalle(b.ID, copia.ID))
				errs <- err
			}(l.ID)
		}
		close(start)

		ok := 0
		for range lectores {
			if err := <-errs; err != nil {
				assert.ErrorIs(t, err, domain.ErrCopyNotAvailable)
				continue
			}
			ok++
		}
		assert.Equalf(t, 1, ok, "round %d", round)
	}

	var detalles int64
	require.NoError(t, e.db.Model(&models.PrestamoDetalle{}).Count(&detalles).Error)
	assert.Equal(t, int64(mysqlRounds), detalles)
}

func TestMySQL_ConcurrentChildChangesKeepFormato(t *testing.T) {
	f := newFixtureOn(t, testdb.OpenMySQL(t), "General")
	fisicos, virtuales := newCatalogServices(f)

	for round := 0; round < mysqlRounds; round++ {
		b := f.material(fmt.Sprintf("B%02d", round))
		virtual := f.virtual(b.ID)
		_, err := services.NewFormatoService().Recalcular(f.ctx, f.db, b.ID)
		require.NoError(t, err)

		start := make(chan struct{})
		errs := make(chan error, 2)
		go func() {
			<-start
			_, err := fisicos.Create(f.ctx, &services.MaterialFisicoInput{MaterialBibliograficoID: b.ID, CodigoEjemplar: "C1"})
			errs <- err
		}()
		go func() {
			<-start
			errs <- virtuales.Deactivate(f.ctx, virtual.ID)
		}()
		close(start)
		require.NoError(t, <-errs)
		require.NoError(t, <-errs)

		assert.Equalf(t, string(domain.FormatoFisico), f.reloadMaterial(b.ID).Formato, "round %d", round)
	}
}
