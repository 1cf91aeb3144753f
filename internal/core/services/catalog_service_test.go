package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/pagination"
)

func TestAutorService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAutorService(repositories.NewAutorRepository(f.db))

	autor, err := svc.Create(f.ctx, &services.AutorInput{Nombre: "  Donald Knuth ", Nacionalidad: "EE.UU."})
	require.NoError(t, err)
	assert.Equal(t, "Donald Knuth", autor.Nombre)
	assert.True(t, autor.Activo)

	_, err = svc.Create(f.ctx, &services.AutorInput{Nombre: "Donald Knuth"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	_, err = svc.Create(f.ctx, &services.AutorInput{Nombre: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := svc.Update(f.ctx, autor.ID, &services.AutorInput{Nombre: "Donald E. Knuth", Nacionalidad: "EE.UU."})
	require.NoError(t, err)
	assert.Equal(t, "Donald E. Knuth", updated.Nombre)

	require.NoError(t, svc.Deactivate(f.ctx, autor.ID))
	active, err := svc.List(f.ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := svc.List(f.ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.Update(f.ctx, autor.ID, &services.AutorInput{Nombre: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDeactivated)

	require.NoError(t, svc.Reactivate(f.ctx, autor.ID))
	got, err := svc.GetByID(f.ctx, autor.ID)
	require.NoError(t, err)
	assert.True(t, got.Activo)

	_, err = svc.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, domain.ErrAutorNotFound)
	assert.ErrorIs(t, svc.Deactivate(f.ctx, 999), domain.ErrAutorNotFound)
}

func TestCategoriaService_UniqueNombre(t *testing.T) {
	f := newFixture(t)
	svc := services.NewCategoriaService(repositories.NewCategoriaRepository(f.db))

	_, err := svc.Create(f.ctx, &services.CategoriaInput{Nombre: "General"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	ciencias, err := svc.Create(f.ctx, &services.CategoriaInput{Nombre: "Ciencias", Descripcion: "Ciencias exactas"})
	require.NoError(t, err)

	_, err = svc.Update(f.ctx, ciencias.ID, &services.CategoriaInput{Nombre: "General"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	// keeping its own nombre is not a conflict
	updated, err := svc.Update(f.ctx, ciencias.ID, &services.CategoriaInput{Nombre: "Ciencias", Descripcion: "Matematica y fisica"})
	require.NoError(t, err)
	assert.Equal(t, "Matematica y fisica", updated.Descripcion)

	list, err := svc.List(f.ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ciencias", list[0].Nombre)

	_, err = svc.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, domain.ErrCategoriaNotFound)
}

func newMaterialService(f *fixture) *services.MaterialBibliograficoService {
	return services.NewMaterialBibliograficoService(
		repositories.NewMaterialBibliograficoRepository(f.db),
		repositories.NewCategoriaRepository(f.db),
	)
}

func TestMaterialBibliografico_Create(t *testing.T) {
	f := newFixture(t)
	svc := newMaterialService(f)

	material, err := svc.Create(f.ctx, &services.MaterialBibliograficoInput{
		Codigo:           "ALG-01",
		Titulo:           "Algoritmos + Estructuras de Datos = Programas",
		CategoriaID:      f.categoria.ID,
		FechaPublicacion: strPtr("1976-02-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.FormatoNinguno), material.Formato)
	require.NotNil(t, material.FechaPublicacion)
	assert.Equal(t, time.Date(1976, time.February, 1, 0, 0, 0, 0, time.UTC), *material.FechaPublicacion)

	_, err = svc.Create(f.ctx, &services.MaterialBibliograficoInput{Codigo: "ALG-01", Titulo: "Otro", CategoriaID: f.categoria.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	_, err = svc.Create(f.ctx, &services.MaterialBibliograficoInput{Codigo: "X", Titulo: "X", CategoriaID: f.categoria.ID, FechaPublicacion: strPtr("01/02/1976")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(f.ctx, &services.MaterialBibliograficoInput{Codigo: "X", Titulo: "X", CategoriaID: 999})
	assert.ErrorIs(t, err, domain.ErrCategoriaNotFound)

	f.deactivate(&models.Categoria{}, f.categoria.ID)
	_, err = svc.Create(f.ctx, &services.MaterialBibliograficoInput{Codigo: "X", Titulo: "X", CategoriaID: f.categoria.ID})
	assert.ErrorIs(t, err, domain.ErrDeactivated)
}

func TestMaterialBibliografico_ListPages(t *testing.T) {
	f := newFixture(t)
	svc := newMaterialService(f)
	for _, codigo := range []string{"B3", "B1", "B2"} {
		f.material(codigo)
	}
	inactivo := f.material("B4")
	f.deactivate(&models.MaterialBibliografico{}, inactivo.ID)

	page, err := svc.List(f.ctx, pagination.NewParams(1, 2), false)
	require.NoError(t, err)
	require.Len(t, page.Materiales, 2)
	assert.Equal(t, "Titulo B1", page.Materiales[0].Titulo)
	assert.Equal(t, "Titulo B2", page.Materiales[1].Titulo)
	require.NotNil(t, page.Materiales[0].Categoria)
	assert.Equal(t, int64(3), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)

	page, err = svc.List(f.ctx, pagination.NewParams(2, 2), false)
	require.NoError(t, err)
	require.Len(t, page.Materiales, 1)
	assert.Equal(t, "Titulo B3", page.Materiales[0].Titulo)

	page, err = svc.List(f.ctx, pagination.NewParams(1, 10), true)
	require.NoError(t, err)
	assert.Len(t, page.Materiales, 4)
}

func TestMaterialBibliografico_GetByIDLoadsRelations(t *testing.T) {
	f := newFixture(t)
	svc := newMaterialService(f)
	b1 := f.material("B1")
	f.copia(b1.ID, "C2", domain.EstadoDisponible)
	f.copia(b1.ID, "C1", domain.EstadoDanado)
	f.virtual(b1.ID)

	autor := &models.Autor{Nombre: "Niklaus Wirth", Activo: true}
	f.create(autor)
	f.create(&models.AutorMaterial{AutorID: autor.ID, MaterialBibliograficoID: b1.ID, Activo: true})

	material, err := svc.GetByID(f.ctx, b1.ID)
	require.NoError(t, err)
	require.NotNil(t, material.Categoria)
	assert.Equal(t, "General", material.Categoria.Nombre)
	require.Len(t, material.Fisicos, 2)
	assert.Equal(t, "C1", material.Fisicos[0].CodigoEjemplar)
	assert.NotNil(t, material.Virtual)
	require.Len(t, material.AutorMateriales, 1)
	require.NotNil(t, material.AutorMateriales[0].Autor)
	assert.Equal(t, "Niklaus Wirth", material.AutorMateriales[0].Autor.Nombre)

	_, err = svc.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestMaterialBibliografico_UpdateKeepsFormato(t *testing.T) {
	f := newFixture(t)
	svc := newMaterialService(f)
	b1 := f.material("B1")
	f.copia(b1.ID, "C1", domain.EstadoDisponible)
	b1.Formato = string(domain.FormatoFisico)
	require.NoError(t, f.db.Model(b1).Update("formato", b1.Formato).Error)

	updated, err := svc.Update(f.ctx, b1.ID, &services.MaterialBibliograficoInput{
		Codigo:      "B1",
		Titulo:      "Nuevo titulo",
		CategoriaID: f.categoria.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo titulo", updated.Titulo)
	assert.Equal(t, string(domain.FormatoFisico), f.reloadMaterial(b1.ID).Formato)
}

func TestMaterialBibliografico_AnonymousWithAutores(t *testing.T) {
	f := newFixture(t)
	svc := newMaterialService(f)
	b1 := f.material("B1")
	autor := &models.Autor{Nombre: "Autor Uno", Activo: true}
	f.create(autor)
	link := &models.AutorMaterial{AutorID: autor.ID, MaterialBibliograficoID: b1.ID, Activo: true}
	f.create(link)

	input := &services.MaterialBibliograficoInput{Codigo: "B1", Titulo: "Titulo B1", Anonimo: true, CategoriaID: f.categoria.ID}
	_, err := svc.Update(f.ctx, b1.ID, input)
	assert.ErrorIs(t, err, domain.ErrAnonymousMaterial)

	f.deactivate(&models.AutorMaterial{}, link.ID)
	updated, err := svc.Update(f.ctx, b1.ID, input)
	require.NoError(t, err)
	assert.True(t, updated.Anonimo)
}

func TestMaterialBibliografico_DeactivateAndReactivate(t *testing.T) {
	f := newFixture(t)
	svc := newMaterialService(f)
	b1 := f.material("B1")
	copia := f.copia(b1.ID, "C1", domain.EstadoDisponible)

	require.NoError(t, svc.Deactivate(f.ctx, b1.ID))
	assert.False(t, f.reloadMaterial(b1.ID).Activo)
	// children are left alone
	assert.True(t, f.reloadCopia(copia.ID).Activo)

	_, err := svc.Update(f.ctx, b1.ID, &services.MaterialBibliograficoInput{Codigo: "B1", Titulo: "T", CategoriaID: f.categoria.ID})
	assert.ErrorIs(t, err, domain.ErrDeactivated)

	f.deactivate(&models.Categoria{}, f.categoria.ID)
	assert.ErrorIs(t, svc.Reactivate(f.ctx, b1.ID), domain.ErrDeactivated)

	require.NoError(t, f.db.Model(&models.Categoria{}).Where("id = ?", f.categoria.ID).Update("activo", true).Error)
	require.NoError(t, svc.Reactivate(f.ctx, b1.ID))
	assert.True(t, f.reloadMaterial(b1.ID).Activo)

	assert.ErrorIs(t, svc.Deactivate(f.ctx, 999), domain.ErrMaterialNotFound)
}

func newAutorMaterialService(f *fixture) *services.AutorMaterialService {
	return services.NewAutorMaterialService(
		repositories.NewAutorMaterialRepository(f.db),
		repositories.NewAutorRepository(f.db),
		repositories.NewMaterialBibliograficoRepository(f.db),
	)
}

func TestAutorMaterial_Link(t *testing.T) {
	f := newFixture(t)
	svc := newAutorMaterialService(f)
	b1 := f.material("B1")
	autor := &models.Autor{Nombre: "Edsger Dijkstra", Activo: true}
	f.create(autor)

	link, err := svc.Create(f.ctx, &services.AutorMaterialInput{AutorID: autor.ID, MaterialBibliograficoID: b1.ID})
	require.NoError(t, err)
	require.NotNil(t, link.Autor)
	assert.Equal(t, "Edsger Dijkstra", link.Autor.Nombre)

	_, err = svc.Create(f.ctx, &services.AutorMaterialInput{AutorID: autor.ID, MaterialBibliograficoID: b1.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	// re-linking a deactivated pair reuses the row
	require.NoError(t, svc.Deactivate(f.ctx, link.ID))
	relinked, err := svc.Create(f.ctx, &services.AutorMaterialInput{AutorID: autor.ID, MaterialBibliograficoID: b1.ID})
	require.NoError(t, err)
	assert.Equal(t, link.ID, relinked.ID)
	assert.True(t, relinked.Activo)
	assert.Equal(t, int64(1), f.count(&models.AutorMaterial{}))

	byMaterial, err := svc.ListByMaterial(f.ctx, b1.ID)
	require.NoError(t, err)
	assert.Len(t, byMaterial, 1)

	_, err = svc.ListByMaterial(f.ctx, 999)
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestAutorMaterial_Rules(t *testing.T) {
	f := newFixture(t)
	svc := newAutorMaterialService(f)
	b1 := f.material("B1")
	anonimo := f.material("ANON")
	require.NoError(t, f.db.Model(anonimo).Update("anonimo", true).Error)
	autor := &models.Autor{Nombre: "Ada Lovelace", Activo: true}
	f.create(autor)
	retirado := &models.Autor{Nombre: "Retirado", Activo: true}
	f.create(retirado)
	f.deactivate(&models.Autor{}, retirado.ID)

	tests := []struct {
		name  string
		input services.AutorMaterialInput
		want  error
	}{
		{"missing ids", services.AutorMaterialInput{}, domain.ErrInvalidInput},
		{"unknown autor", services.AutorMaterialInput{AutorID: 999, MaterialBibliograficoID: b1.ID}, domain.ErrAutorNotFound},
		{"inactive autor", services.AutorMaterialInput{AutorID: retirado.ID, MaterialBibliograficoID: b1.ID}, domain.ErrDeactivated},
		{"unknown material", services.AutorMaterialInput{AutorID: autor.ID, MaterialBibliograficoID: 999}, domain.ErrMaterialNotFound},
		{"anonymous material", services.AutorMaterialInput{AutorID: autor.ID, MaterialBibliograficoID: anonimo.ID}, domain.ErrAnonymousMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := svc.Create(f.ctx, &input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, int64(0), f.count(&models.AutorMaterial{}))
}

func TestAutorMaterial_UpdateAndReactivate(t *testing.T) {
	f := newFixture(t)
	svc := newAutorMaterialService(f)
	b1 := f.material("B1")
	b2 := f.material("B2")
	autor := &models.Autor{Nombre: "Grace Hopper", Activo: true}
	f.create(autor)

	first, err := svc.Create(f.ctx, &services.AutorMaterialInput{AutorID: autor.ID, MaterialBibliograficoID: b1.ID})
	require.NoError(t, err)
	second, err := svc.Create(f.ctx, &services.AutorMaterialInput{AutorID: autor.ID, MaterialBibliograficoID: b2.ID})
	require.NoError(t, err)

	_, err = svc.Update(f.ctx, second.ID, &services.AutorMaterialInput{AutorID: autor.ID, MaterialBibliograficoID: b1.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	require.NoError(t, svc.Deactivate(f.ctx, first.ID))
	f.deactivate(&models.MaterialBibliografico{}, b1.ID)
	assert.ErrorIs(t, svc.Reactivate(f.ctx, first.ID), domain.ErrDeactivated)

	_, err = svc.Update(f.ctx, first.ID, &services.AutorMaterialInput{AutorID: autor.ID, MaterialBibliograficoID: b2.ID})
	assert.ErrorIs(t, err, domain.ErrDeactivated)

	_, err = svc.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, domain.ErrAutorMaterialNotFound)
}
