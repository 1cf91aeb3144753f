package services_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/testdb"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/password"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

// monday is 2024-06-03 10:00 UTC
var monday = time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

// testClock is a settable clock. Times stay in UTC at second precision so
// they compare correctly once stored.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d).Truncate(time.Second) }

type fixture struct {
	t   *testing.T
	db  *gorm.DB
	ctx context.Context

	categoria *models.Categoria
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, testdb.Open(t), "General")
}

// newFixtureOn builds a fixture over an already migrated database. categoria
// must be unused in db.
func newFixtureOn(t *testing.T, db *gorm.DB, categoria string) *fixture {
	t.Helper()
	f := &fixture{t: t, db: db, ctx: context.Background()}
	f.categoria = &models.Categoria{Nombre: categoria, Activo: true}
	require.NoError(t, f.db.Create(f.categoria).Error)
	return f
}

func (f *fixture) create(v interface{}) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(v).Error)
}

func (f *fixture) deactivate(model interface{}, id uint) {
	f.t.Helper()
	require.NoError(f.t, f.db.Model(model).Where("id = ?", id).Update("activo", false).Error)
}

func (f *fixture) material(codigo string) *models.MaterialBibliografico {
	f.t.Helper()
	m := &models.MaterialBibliografico{
		Codigo:      codigo,
		Titulo:      "Titulo " + codigo,
		CategoriaID: f.categoria.ID,
		Formato:     string(domain.FormatoNinguno),
		Activo:      true,
	}
	f.create(m)
	return m
}

func (f *fixture) copia(materialID uint, codigo string, estado domain.EstadoFisico) *models.MaterialFisico {
	f.t.Helper()
	c := &models.MaterialFisico{
		MaterialBibliograficoID: materialID,
		CodigoEjemplar:          codigo,
		Estado:                  string(estado),
		Activo:                  true,
	}
	f.create(c)
	return c
}

func (f *fixture) virtual(materialID uint) *models.MaterialVirtual {
	f.t.Helper()
	v := &models.MaterialVirtual{
		MaterialBibliograficoID: materialID,
		URL:                     "https://repositorio.example.edu/doc.pdf",
		FormatoArchivo:          "PDF",
		Activo:                  true,
	}
	f.create(v)
	return v
}

func (f *fixture) lector(codigo string) *models.Lector {
	f.t.Helper()
	l := &models.Lector{
		Codigo:    codigo,
		Nombres:   "Lector",
		Apellidos: codigo,
		Email:     codigo + "@uni.edu",
		Tipo:      string(domain.LectorEstudiante),
		Activo:    true,
	}
	f.create(l)
	return l
}

func (f *fixture) usuario(email string, rol domain.Role) *models.Usuario {
	f.t.Helper()
	hash, err := password.Hash("biblio2024")
	require.NoError(f.t, err)
	u := &models.Usuario{Nombre: "Operador", Email: email, Password: hash, Rol: string(rol), Activo: true}
	f.create(u)
	return u
}

func (f *fixture) reloadCopia(id uint) *models.MaterialFisico {
	f.t.Helper()
	var c models.MaterialFisico
	require.NoError(f.t, f.db.First(&c, id).Error)
	return &c
}

func (f *fixture) reloadMaterial(id uint) *models.MaterialBibliografico {
	f.t.Helper()
	var m models.MaterialBibliografico
	require.NoError(f.t, f.db.First(&m, id).Error)
	return &m
}

func (f *fixture) reloadPrestamo(id uint) *models.Prestamo {
	f.t.Helper()
	var p models.Prestamo
	require.NoError(f.t, f.db.First(&p, id).Error)
	return &p
}

func (f *fixture) reloadDetalle(id uint) *models.PrestamoDetalle {
	f.t.Helper()
	var d models.PrestamoDetalle
	require.NoError(f.t, f.db.First(&d, id).Error)
	return &d
}

func (f *fixture) count(model interface{}) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Count(&n).Error)
	return n
}

func assertSameTime(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "want %s, got %s", want, got)
}

func uintPtr(v uint) *uint { return &v }

func strPtr(s string) *string { return &s }

// statementLog records "select <table>" and "update <table>" for every
// statement run on the fixture database between start and stop.
type statementLog struct {
	mu      sync.Mutex
	on      bool
	entries []string
}

func (l *statementLog) start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.entries = nil
}

func (l *statementLog) stop() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	return append([]string(nil), l.entries...)
}

func (f *fixture) recordStatements() *statementLog {
	f.t.Helper()
	log := &statementLog{}
	record := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			log.mu.Lock()
			defer log.mu.Unlock()
			if log.on {
				log.entries = append(log.entries, op+" "+tx.Statement.Table)
			}
		}
	}

	cb := f.db.Callback()
	require.NoError(f.t, cb.Query().After("gorm:query").Register("test:record_select", record("select")))
	require.NoError(f.t, cb.Update().After("gorm:update").Register("test:record_update", record("update")))
	return log
}
