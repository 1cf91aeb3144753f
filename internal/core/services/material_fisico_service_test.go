package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
)

func newCatalogServices(f *fixture) (*services.MaterialFisicoService, *services.MaterialVirtualService) {
	formato := services.NewFormatoService()
	return services.NewMaterialFisicoService(f.db, formato), services.NewMaterialVirtualService(f.db, formato)
}

func TestFormato_FollowsActiveChildren(t *testing.T) {
	f := newFixture(t)
	fisicos, virtuales := newCatalogServices(f)
	b1 := f.material("B1")

	copia, err := fisicos.Create(f.ctx, &services.MaterialFisicoInput{MaterialBibliograficoID: b1.ID, CodigoEjemplar: "C1"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.EstadoDisponible), copia.Estado)
	assert.Equal(t, string(domain.FormatoFisico), f.reloadMaterial(b1.ID).Formato)

	virtual, err := virtuales.Create(f.ctx, &services.MaterialVirtualInput{
		MaterialBibliograficoID: b1.ID,
		URL:                     "https://repositorio.example.edu/b1.pdf",
		FormatoArchivo:          "pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "PDF", virtual.FormatoArchivo)
	assert.Equal(t, string(domain.FormatoMixto), f.reloadMaterial(b1.ID).Formato)

	require.NoError(t, fisicos.Deactivate(f.ctx, copia.ID))
	assert.Equal(t, string(domain.FormatoVirtual), f.reloadMaterial(b1.ID).Formato)

	require.NoError(t, virtuales.Deactivate(f.ctx, virtual.ID))
	assert.Equal(t, string(domain.FormatoNinguno), f.reloadMaterial(b1.ID).Formato)

	require.NoError(t, fisicos.Reactivate(f.ctx, copia.ID))
	assert.Equal(t, string(domain.FormatoFisico), f.reloadMaterial(b1.ID).Formato)
}

func TestFormato_DamagedCopiesStillCount(t *testing.T) {
	f := newFixture(t)
	fisicos, _ := newCatalogServices(f)
	b1 := f.material("B1")

	_, err := fisicos.Create(f.ctx, &services.MaterialFisicoInput{
		MaterialBibliograficoID: b1.ID,
		CodigoEjemplar:          "C1",
		Estado:                  strPtr("dañado"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.FormatoFisico), f.reloadMaterial(b1.ID).Formato)
}

func TestFormato_RecalcularAllLocksEachMaterialOnce(t *testing.T) {
	f := newFixture(t)
	b1 := f.material("B1")
	b2 := f.material("B2")
	f.copia(b1.ID, "C1", domain.EstadoDisponible)
	f.virtual(b2.ID)

	log := f.recordStatements()
	log.start()
	formatos, err := services.NewFormatoService().RecalcularAll(f.ctx, f.db, b2.ID, b1.ID, b2.ID, 999)
	statements := log.stop()
	require.NoError(t, err)

	assert.Equal(t, map[uint]domain.Formato{
		b1.ID: domain.FormatoFisico,
		b2.ID: domain.FormatoVirtual,
	}, formatos)
	assert.Equal(t, string(domain.FormatoFisico), f.reloadMaterial(b1.ID).Formato)
	assert.Equal(t, string(domain.FormatoVirtual), f.reloadMaterial(b2.ID).Formato)

	// one lock statement for every material, taken before any child is counted
	require.NotEmpty(t, statements)
	assert.Equal(t, "select materiales_bibliograficos", statements[0])
	assert.Equal(t, 1, countOf(statements, "select materiales_bibliograficos"))
	assert.Equal(t, 2, countOf(statements, "update materiales_bibliograficos"))
}

func countOf(items []string, want string) int {
	n := 0
	for _, item := range items {
		if item == want {
			n++
		}
	}
	return n
}

func TestMaterialFisico_MoveRecalculatesBothParents(t *testing.T) {
	f := newFixture(t)
	fisicos, _ := newCatalogServices(f)
	b1 := f.material("B1")
	b2 := f.material("B2")

	copia, err := fisicos.Create(f.ctx, &services.MaterialFisicoInput{MaterialBibliograficoID: b1.ID, CodigoEjemplar: "C1"})
	require.NoError(t, err)

	moved, err := fisicos.Update(f.ctx, copia.ID, &services.MaterialFisicoInput{
		MaterialBibliograficoID: b2.ID,
		CodigoEjemplar:          "C1",
		Ubicacion:               "Estante 4",
	})
	require.NoError(t, err)
	assert.Equal(t, b2.ID, moved.MaterialBibliograficoID)
	assert.Equal(t, "Estante 4", f.reloadCopia(copia.ID).Ubicacion)

	assert.Equal(t, string(domain.FormatoNinguno), f.reloadMaterial(b1.ID).Formato)
	assert.Equal(t, string(domain.FormatoFisico), f.reloadMaterial(b2.ID).Formato)
}

func TestMaterialFisico_CreateValidation(t *testing.T) {
	f := newFixture(t)
	fisicos, _ := newCatalogServices(f)
	b1 := f.material("B1")
	inactivo := f.material("B2")
	f.deactivate(&models.MaterialBibliografico{}, inactivo.ID)

	_, err := fisicos.Create(f.ctx, &services.MaterialFisicoInput{MaterialBibliograficoID: b1.ID, CodigoEjemplar: "C1"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input services.MaterialFisicoInput
		want  error
	}{
		{"missing material", services.MaterialFisicoInput{CodigoEjemplar: "C9"}, domain.ErrInvalidInput},
		{"blank codigo", services.MaterialFisicoInput{MaterialBibliograficoID: b1.ID, CodigoEjemplar: "  "}, domain.ErrInvalidInput},
		{"unknown estado", services.MaterialFisicoInput{MaterialBibliograficoID: b1.ID, CodigoEjemplar: "C9", Estado: strPtr("roto")}, domain.ErrInvalidInput},
		{"prestado is reserved", services.MaterialFisicoInput{MaterialBibliograficoID: b1.ID, CodigoEjemplar: "C9", Estado: strPtr("prestado")}, domain.ErrCopyStateReserved},
		{"duplicate codigo", services.MaterialFisicoInput{MaterialBibliograficoID: b1.ID, CodigoEjemplar: "C1"}, domain.ErrDuplicateEntry},
		{"unknown parent", services.MaterialFisicoInput{MaterialBibliograficoID: 999, CodigoEjemplar: "C9"}, domain.ErrMaterialNotFound},
		{"inactive parent", services.MaterialFisicoInput{MaterialBibliograficoID: inactivo.ID, CodigoEjemplar: "C9"}, domain.ErrDeactivated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := fisicos.Create(f.ctx, &input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// the same codigo is fine under another material
	b3 := f.material("B3")
	_, err = fisicos.Create(f.ctx, &services.MaterialFisicoInput{MaterialBibliograficoID: b3.ID, CodigoEjemplar: "C1"})
	assert.NoError(t, err)
}

func TestMaterialFisico_CopyOnLoanIsPinned(t *testing.T) {
	f := newFixture(t)
	fisicos, _ := newCatalogServices(f)
	b1 := f.material("B1")
	b2 := f.material("B2")
	copia := f.copia(b1.ID, "C1", domain.EstadoPrestado)

	_, err := fisicos.Update(f.ctx, copia.ID, &services.MaterialFisicoInput{MaterialBibliograficoID: b2.ID, CodigoEjemplar: "C1"})
	assert.ErrorIs(t, err, domain.ErrCopyOnLoan)

	_, err = fisicos.Update(f.ctx, copia.ID, &services.MaterialFisicoInput{
		MaterialBibliograficoID: b1.ID,
		CodigoEjemplar:          "C1",
		Estado:                  strPtr("disponible"),
	})
	assert.ErrorIs(t, err, domain.ErrCopyOnLoan)

	assert.ErrorIs(t, fisicos.Deactivate(f.ctx, copia.ID), domain.ErrCopyOnLoan)

	// location edits are allowed
	updated, err := fisicos.Update(f.ctx, copia.ID, &services.MaterialFisicoInput{
		MaterialBibliograficoID: b1.ID,
		CodigoEjemplar:          "C1",
		Ubicacion:               "Mostrador",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.EstadoPrestado), updated.Estado)

	stored := f.reloadCopia(copia.ID)
	assert.Equal(t, b1.ID, stored.MaterialBibliograficoID)
	assert.True(t, stored.Activo)
	assert.Equal(t, "Mostrador", stored.Ubicacion)
}

func TestMaterialFisico_StateEdits(t *testing.T) {
	f := newFixture(t)
	fisicos, _ := newCatalogServices(f)
	b1 := f.material("B1")
	copia := f.copia(b1.ID, "C1", domain.EstadoDisponible)

	updated, err := fisicos.Update(f.ctx, copia.ID, &services.MaterialFisicoInput{
		MaterialBibliograficoID: b1.ID,
		CodigoEjemplar:          "C1",
		Estado:                  strPtr("perdido"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.EstadoPerdido), updated.Estado)

	_, err = fisicos.Update(f.ctx, copia.ID, &services.MaterialFisicoInput{
		MaterialBibliograficoID: b1.ID,
		CodigoEjemplar:          "C1",
		Estado:                  strPtr("prestado"),
	})
	assert.ErrorIs(t, err, domain.ErrCopyStateReserved)
	assert.Equal(t, string(domain.EstadoPerdido), f.reloadCopia(copia.ID).Estado)
}

func TestMaterialFisico_InactiveRows(t *testing.T) {
	f := newFixture(t)
	fisicos, _ := newCatalogServices(f)
	b1 := f.material("B1")
	copia := f.copia(b1.ID, "C1", domain.EstadoDisponible)
	f.copia(b1.ID, "C2", domain.EstadoDisponible)
	require.NoError(t, fisicos.Deactivate(f.ctx, copia.ID))

	_, err := fisicos.Update(f.ctx, copia.ID, &services.MaterialFisicoInput{MaterialBibliograficoID: b1.ID, CodigoEjemplar: "C1"})
	assert.ErrorIs(t, err, domain.ErrDeactivated)

	active, err := fisicos.List(f.ctx, b1.ID, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := fisicos.List(f.ctx, 0, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// reactivation needs an active parent
	f.deactivate(&models.MaterialBibliografico{}, b1.ID)
	assert.ErrorIs(t, fisicos.Reactivate(f.ctx, copia.ID), domain.ErrDeactivated)

	_, err = fisicos.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, domain.ErrFisicoNotFound)
	assert.ErrorIs(t, fisicos.Deactivate(f.ctx, 999), domain.ErrFisicoNotFound)
}

func TestMaterialVirtual_OnePerMaterial(t *testing.T) {
	f := newFixture(t)
	_, virtuales := newCatalogServices(f)
	b1 := f.material("B1")
	b2 := f.material("B2")

	input := func(materialID uint) *services.MaterialVirtualInput {
		return &services.MaterialVirtualInput{MaterialBibliograficoID: materialID, URL: "https://repositorio.example.edu/x.pdf", FormatoArchivo: "PDF"}
	}

	v1, err := virtuales.Create(f.ctx, input(b1.ID))
	require.NoError(t, err)

	_, err = virtuales.Create(f.ctx, input(b1.ID))
	assert.ErrorIs(t, err, domain.ErrVirtualAlreadyExists)

	v2, err := virtuales.Create(f.ctx, input(b2.ID))
	require.NoError(t, err)

	// moving onto a material that already has one fails
	_, err = virtuales.Update(f.ctx, v2.ID, input(b1.ID))
	assert.ErrorIs(t, err, domain.ErrVirtualAlreadyExists)

	// editing in place is fine
	edited := input(b1.ID)
	edited.URL = "https://repositorio.example.edu/nuevo.pdf"
	updated, err := virtuales.Update(f.ctx, v1.ID, edited)
	require.NoError(t, err)
	assert.Equal(t, "https://repositorio.example.edu/nuevo.pdf", updated.URL)
}

func TestMaterialVirtual_MoveRecalculatesBothParents(t *testing.T) {
	f := newFixture(t)
	_, virtuales := newCatalogServices(f)
	b1 := f.material("B1")
	b2 := f.material("B2")
	f.copia(b1.ID, "C1", domain.EstadoDisponible)

	v, err := virtuales.Create(f.ctx, &services.MaterialVirtualInput{MaterialBibliograficoID: b1.ID, URL: "https://repositorio.example.edu/b1"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.FormatoMixto), f.reloadMaterial(b1.ID).Formato)

	_, err = virtuales.Update(f.ctx, v.ID, &services.MaterialVirtualInput{MaterialBibliograficoID: b2.ID, URL: "https://repositorio.example.edu/b1"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.FormatoFisico), f.reloadMaterial(b1.ID).Formato)
	assert.Equal(t, string(domain.FormatoVirtual), f.reloadMaterial(b2.ID).Formato)
}

func TestMaterialVirtual_Validation(t *testing.T) {
	f := newFixture(t)
	_, virtuales := newCatalogServices(f)
	b1 := f.material("B1")

	for _, raw := range []string{"", "not a url", "/relative/path"} {
		_, err := virtuales.Create(f.ctx, &services.MaterialVirtualInput{MaterialBibliograficoID: b1.ID, URL: raw})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}

	f.deactivate(&models.MaterialBibliografico{}, b1.ID)
	_, err := virtuales.Create(f.ctx, &services.MaterialVirtualInput{MaterialBibliograficoID: b1.ID, URL: "https://repositorio.example.edu/b1"})
	assert.ErrorIs(t, err, domain.ErrDeactivated)

	_, err = virtuales.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, domain.ErrVirtualNotFound)
	assert.Equal(t, int64(0), f.count(&models.MaterialVirtual{}))
}
