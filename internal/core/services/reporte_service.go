package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

// ReporteService builds read-only aggregates over loans and the catalog
type ReporteService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReporteService creates a new report service
func NewReporteService(db *gorm.DB) *ReporteService {
	return &ReporteService{db: db, now: time.Now}
}

// WithClock replaces the clock used to compute days overdue
func (s *ReporteService) WithClock(now func() time.Time) *ReporteService {
	s.now = now
	return s
}

// ResumenData represents the summary report
type ResumenData struct {
	PrestamosPorEstado   map[string]int64 `json:"prestamos_por_estado"`
	DetallesPorEstado    map[string]int64 `json:"detalles_por_estado"`
	MaterialesPorFormato map[string]int64 `json:"materiales_por_formato"`
	EjemplaresPorEstado  map[string]int64 `json:"ejemplares_por_estado"`
	LectoresActivos      int64            `json:"lectores_activos"`

	MasPrestados []MaterialRanking `json:"mas_prestados"`
}

// MaterialRanking is one row of the most-borrowed ranking
type MaterialRanking struct {
	MaterialBibliograficoID uint   `json:"material_bibliografico_id"`
	Titulo                  string `json:"titulo"`
	TotalPrestamos          int64  `json:"total_prestamos"`
}

// VencidoItem is one overdue, unreturned loan detail
type VencidoItem struct {
	DetalleID        uint      `json:"detalle_id"`
	PrestamoID       uint      `json:"prestamo_id"`
	LectorID         uint      `json:"lector_id"`
	LectorCodigo     string    `json:"lector_codigo"`
	LectorNombre     string    `json:"lector_nombre"`
	Titulo           string    `json:"titulo"`
	Tipo             string    `json:"tipo"`
	CodigoEjemplar   *string   `json:"codigo_ejemplar"`
	FechaVencimiento time.Time `json:"fecha_vencimiento"`
	DiasVencido      int       `json:"dias_vencido"`
}

type groupCount struct {
	Clave string
	Total int64
}

// countBy counts rows of table grouped by column
func (s *ReporteService) countBy(ctx context.Context, table, column string, scopes ...func(*gorm.DB) *gorm.DB) (map[string]int64, error) {
	var rows []groupCount
	err := s.db.WithContext(ctx).Table(table).
		Scopes(scopes...).
		Select(column + " AS clave, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Clave] = r.Total
	}
	return out, nil
}

func ensureKeys(m map[string]int64, keys ...string) {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			m[k] = 0
		}
	}
}

func onlyActive(db *gorm.DB) *gorm.DB {
	return db.Where("activo = ?", true)
}

// Resumen returns loan, detail, format and copy counts plus the top five materials
func (s *ReporteService) Resumen(ctx context.Context) (*ResumenData, error) {
	data := &ResumenData{}
	var err error

	if data.PrestamosPorEstado, err = s.countBy(ctx, "prestamos", "estado"); err != nil {
		return nil, err
	}
	if data.DetallesPorEstado, err = s.countBy(ctx, "prestamo_detalles", "estado"); err != nil {
		return nil, err
	}
	if data.MaterialesPorFormato, err = s.countBy(ctx, "materiales_bibliograficos", "formato", onlyActive); err != nil {
		return nil, err
	}
	if data.EjemplaresPorEstado, err = s.countBy(ctx, "materiales_fisicos", "estado", onlyActive); err != nil {
		return nil, err
	}

	// Every known bucket is present, even when empty
	estados := []string{string(domain.PrestamoVigente), string(domain.PrestamoVencido), string(domain.PrestamoDevuelto)}
	ensureKeys(data.PrestamosPorEstado, estados...)
	ensureKeys(data.DetallesPorEstado, estados...)
	ensureKeys(data.MaterialesPorFormato,
		string(domain.FormatoNinguno), string(domain.FormatoFisico), string(domain.FormatoVirtual), string(domain.FormatoMixto))

	if err := s.db.WithContext(ctx).Table("lectores").Scopes(onlyActive).Count(&data.LectoresActivos).Error; err != nil {
		return nil, err
	}

	data.MasPrestados = []MaterialRanking{}
	err = s.db.WithContext(ctx).Table("prestamo_detalles").
		Select("prestamo_detalles.material_bibliografico_id, materiales_bibliograficos.titulo, COUNT(*) AS total_prestamos").
		Joins("JOIN materiales_bibliograficos ON materiales_bibliograficos.id = prestamo_detalles.material_bibliografico_id").
		Group("prestamo_detalles.material_bibliografico_id, materiales_bibliograficos.titulo").
		Order("total_prestamos DESC, prestamo_detalles.material_bibliografico_id ASC").
		Limit(5).
		Scan(&data.MasPrestados).Error
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Vencidos lists VENCIDO details, most overdue first
func (s *ReporteService) Vencidos(ctx context.Context) ([]VencidoItem, error) {
	var rows []struct {
		DetalleID        uint
		PrestamoID       uint
		LectorID         uint
		LectorCodigo     string
		Nombres          string
		Apellidos        string
		Titulo           string
		Tipo             string
		CodigoEjemplar   *string
		FechaVencimiento time.Time
	}
	err := s.db.WithContext(ctx).Table("prestamo_detalles").
		Select(`
			prestamo_detalles.id AS detalle_id,
			prestamo_detalles.prestamo_id,
			prestamos.lector_id,
			lectores.codigo AS lector_codigo,
			lectores.nombres,
			lectores.apellidos,
			materiales_bibliograficos.titulo,
			prestamo_detalles.tipo,
			materiales_fisicos.codigo_ejemplar,
			prestamo_detalles.fecha_vencimiento
		`).
		Joins("JOIN prestamos ON prestamos.id = prestamo_detalles.prestamo_id").
		Joins("JOIN lectores ON lectores.id = prestamos.lector_id").
		Joins("JOIN materiales_bibliograficos ON materiales_bibliograficos.id = prestamo_detalles.material_bibliografico_id").
		Joins("LEFT JOIN materiales_fisicos ON materiales_fisicos.id = prestamo_detalles.material_fisico_id").
		Where("prestamo_detalles.estado = ?", string(domain.PrestamoVencido)).
		Order("prestamo_detalles.fecha_vencimiento ASC, prestamo_detalles.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]VencidoItem, len(rows))
	for i, r := range rows {
		items[i] = VencidoItem{
			DetalleID:        r.DetalleID,
			PrestamoID:       r.PrestamoID,
			LectorID:         r.LectorID,
			LectorCodigo:     r.LectorCodigo,
			LectorNombre:     r.Nombres + " " + r.Apellidos,
			Titulo:           r.Titulo,
			Tipo:             r.Tipo,
			CodigoEjemplar:   r.CodigoEjemplar,
			FechaVencimiento: r.FechaVencimiento,
			DiasVencido:      int(now.Sub(r.FechaVencimiento).Hours() / 24),
		}
	}
	return items, nil
}
