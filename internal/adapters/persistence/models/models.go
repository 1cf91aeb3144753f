package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Staff & Auth Tables
// ============================================================

// Usuario represents usuarios table (library staff operating the system)
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Rol       string    `gorm:"size:20;not null;default:'BIBLIOTECARIO'" json:"rol"`
	Activo    bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

func (u Usuario) IsActive() bool { return u.Activo }

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UsuarioID uint       `gorm:"index;not null" json:"usuario_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	Usuario   Usuario    `gorm:"foreignKey:UsuarioID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog Tables
// ============================================================

// Lector represents lectores table (borrowers)
type Lector struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Codigo    string    `gorm:"uniqueIndex;size:20;not null" json:"codigo"`
	Nombres   string    `gorm:"size:100;not null" json:"nombres"`
	Apellidos string    `gorm:"size:100;not null" json:"apellidos"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Telefono  string    `gorm:"size:20" json:"telefono"`
	Tipo      string    `gorm:"size:20;not null;default:'ESTUDIANTE'" json:"tipo"`
	Activo    bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Lector) TableName() string {
	return "lectores"
}

func (l Lector) IsActive() bool { return l.Activo }

// NombreCompleto returns "Nombres Apellidos"
func (l *Lector) NombreCompleto() string {
	return l.Nombres + " " + l.Apellidos
}

// Autor represents autores table
type Autor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nombre       string    `gorm:"uniqueIndex;size:150;not null" json:"nombre"`
	Nacionalidad string    `gorm:"size:60" json:"nacionalidad"`
	Activo       bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Autor) TableName() string {
	return "autores"
}

func (a Autor) IsActive() bool { return a.Activo }

// Categoria represents categorias table
type Categoria struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Nombre      string    `gorm:"uniqueIndex;size:100;not null" json:"nombre"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	Activo      bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Categoria) TableName() string {
	return "categorias"
}

func (c Categoria) IsActive() bool { return c.Activo }

// MaterialBibliografico represents materiales_bibliograficos table.
// Formato is derived from the active children and is never set from input.
type MaterialBibliografico struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Codigo           string     `gorm:"uniqueIndex;size:30;not null" json:"codigo"`
	Titulo           string     `gorm:"size:255;not null" json:"titulo"`
	Anonimo          bool       `gorm:"not null;default:false" json:"anonimo"`
	CategoriaID      uint       `gorm:"not null;index" json:"categoria_id"`
	Formato          string     `gorm:"size:10;not null;default:'NINGUNO'" json:"formato"`
	FechaPublicacion *time.Time `gorm:"type:date" json:"fecha_publicacion"`
	Activo           bool       `gorm:"not null;default:true" json:"activo"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Categoria       *Categoria       `gorm:"foreignKey:CategoriaID" json:"categoria,omitempty"`
	AutorMateriales []AutorMaterial  `gorm:"foreignKey:MaterialBibliograficoID" json:"autores,omitempty"`
	Fisicos         []MaterialFisico `gorm:"foreignKey:MaterialBibliograficoID" json:"fisicos,omitempty"`
	Virtual         *MaterialVirtual `gorm:"foreignKey:MaterialBibliograficoID" json:"virtual,omitempty"`
}

func (MaterialBibliografico) TableName() string {
	return "materiales_bibliograficos"
}

func (m MaterialBibliografico) IsActive() bool { return m.Activo }

// MaterialFisico represents materiales_fisicos table (one physical copy)
type MaterialFisico struct {
	ID                      uint      `gorm:"primaryKey" json:"id"`
	MaterialBibliograficoID uint      `gorm:"not null;uniqueIndex:idx_fisico_material_codigo" json:"material_bibliografico_id"`
	CodigoEjemplar          string    `gorm:"size:50;not null;uniqueIndex:idx_fisico_material_codigo" json:"codigo_ejemplar"`
	Estado                  string    `gorm:"size:20;not null;default:'disponible'" json:"estado"`
	Ubicacion               string    `gorm:"size:100" json:"ubicacion"`
	Activo                  bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt               time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MaterialFisico) TableName() string {
	return "materiales_fisicos"
}

func (m MaterialFisico) IsActive() bool { return m.Activo }

// MaterialVirtual represents materiales_virtuales table (at most one per material)
type MaterialVirtual struct {
	ID                      uint      `gorm:"primaryKey" json:"id"`
	MaterialBibliograficoID uint      `gorm:"not null;uniqueIndex" json:"material_bibliografico_id"`
	URL                     string    `gorm:"column:url;size:500;not null" json:"url"`
	FormatoArchivo          string    `gorm:"size:20" json:"formato_archivo"`
	Activo                  bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt               time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MaterialVirtual) TableName() string {
	return "materiales_virtuales"
}

func (m MaterialVirtual) IsActive() bool { return m.Activo }

// AutorMaterial represents autor_material join table
type AutorMaterial struct {
	ID                      uint      `gorm:"primaryKey" json:"id"`
	AutorID                 uint      `gorm:"not null;uniqueIndex:idx_autor_material" json:"autor_id"`
	MaterialBibliograficoID uint      `gorm:"not null;uniqueIndex:idx_autor_material" json:"material_bibliografico_id"`
	Activo                  bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt               time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Autor *Autor `gorm:"foreignKey:AutorID" json:"autor,omitempty"`
}

func (AutorMaterial) TableName() string {
	return "autor_material"
}

func (a AutorMaterial) IsActive() bool { return a.Activo }

// ============================================================
// Loan Tables
// ============================================================

// Prestamo represents prestamos table (loan header, append-only)
type Prestamo struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	LectorID         uint       `gorm:"not null;index" json:"lector_id"`
	UsuarioID        uint       `gorm:"not null;index" json:"usuario_id"`
	FechaPrestamo    time.Time  `gorm:"not null;index" json:"fecha_prestamo"`
	FechaVencimiento time.Time  `gorm:"not null;index" json:"fecha_vencimiento"`
	Estado           string     `gorm:"size:10;not null;index" json:"estado"`
	Observacion      *string    `gorm:"type:text" json:"observacion"`
	FechaDevolucion  *time.Time `json:"fecha_devolucion"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Lector   *Lector           `gorm:"foreignKey:LectorID" json:"lector,omitempty"`
	Usuario  *Usuario          `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Detalles []PrestamoDetalle `gorm:"foreignKey:PrestamoID" json:"detalles,omitempty"`
}

func (Prestamo) TableName() string {
	return "prestamos"
}

// PrestamoDetalle represents prestamo_detalles table (one borrowed item)
type PrestamoDetalle struct {
	ID                      uint       `gorm:"primaryKey" json:"id"`
	PrestamoID              uint       `gorm:"not null;index" json:"prestamo_id"`
	MaterialBibliograficoID uint       `gorm:"not null;index" json:"material_bibliografico_id"`
	MaterialFisicoID        *uint      `gorm:"index" json:"material_fisico_id"`
	MaterialVirtualID       *uint      `gorm:"index" json:"material_virtual_id"`
	Tipo                    string     `gorm:"size:10;not null" json:"tipo"`
	FechaVencimiento        time.Time  `gorm:"not null;index" json:"fecha_vencimiento"`
	Estado                  string     `gorm:"size:10;not null;index" json:"estado"`
	FechaDevolucion         *time.Time `json:"fecha_devolucion"`
	CreatedAt               time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	MaterialBibliografico *MaterialBibliografico `gorm:"foreignKey:MaterialBibliograficoID" json:"material_bibliografico,omitempty"`
	MaterialFisico        *MaterialFisico        `gorm:"foreignKey:MaterialFisicoID" json:"material_fisico,omitempty"`
	MaterialVirtual       *MaterialVirtual       `gorm:"foreignKey:MaterialVirtualID" json:"material_virtual,omitempty"`
}

func (PrestamoDetalle) TableName() string {
	return "prestamo_detalles"
}

// ============================================================
// Response DTOs
// ============================================================

// PrestamoResponse DTO
type PrestamoResponse struct {
	ID               uint                       `json:"id"`
	LectorID         uint                       `json:"lector_id"`
	LectorNombre     string                     `json:"lector_nombre,omitempty"`
	UsuarioID        uint                       `json:"usuario_id"`
	UsuarioNombre    string                     `json:"usuario_nombre,omitempty"`
	FechaPrestamo    time.Time                  `json:"fecha_prestamo"`
	FechaVencimiento time.Time                  `json:"fecha_vencimiento"`
	Estado           string                     `json:"estado"`
	Observacion      *string                    `json:"observacion"`
	FechaDevolucion  *time.Time                 `json:"fecha_devolucion"`
	Detalles         []*PrestamoDetalleResponse `json:"detalles"`
}

// PrestamoDetalleResponse DTO
type PrestamoDetalleResponse struct {
	ID                      uint       `json:"id"`
	PrestamoID              uint       `json:"prestamo_id"`
	MaterialBibliograficoID uint       `json:"material_bibliografico_id"`
	Titulo                  string     `json:"titulo,omitempty"`
	MaterialFisicoID        *uint      `json:"material_fisico_id"`
	CodigoEjemplar          string     `json:"codigo_ejemplar,omitempty"`
	MaterialVirtualID       *uint      `json:"material_virtual_id"`
	Tipo                    string     `json:"tipo"`
	FechaVencimiento        time.Time  `json:"fecha_vencimiento"`
	Estado                  string     `json:"estado"`
	FechaDevolucion         *time.Time `json:"fecha_devolucion"`
}

func (p *Prestamo) ToResponse() *PrestamoResponse {
	resp := &PrestamoResponse{
		ID:               p.ID,
		LectorID:         p.LectorID,
		UsuarioID:        p.UsuarioID,
		FechaPrestamo:    p.FechaPrestamo,
		FechaVencimiento: p.FechaVencimiento,
		Estado:           p.Estado,
		Observacion:      p.Observacion,
		FechaDevolucion:  p.FechaDevolucion,
		Detalles:         make([]*PrestamoDetalleResponse, 0, len(p.Detalles)),
	}

	if p.Lector != nil {
		resp.LectorNombre = p.Lector.NombreCompleto()
	}
	if p.Usuario != nil {
		resp.UsuarioNombre = p.Usuario.Nombre
	}
	for i := range p.Detalles {
		resp.Detalles = append(resp.Detalles, p.Detalles[i].ToResponse())
	}

	return resp
}

func (d *PrestamoDetalle) ToResponse() *PrestamoDetalleResponse {
	resp := &PrestamoDetalleResponse{
		ID:                      d.ID,
		PrestamoID:              d.PrestamoID,
		MaterialBibliograficoID: d.MaterialBibliograficoID,
		MaterialFisicoID:        d.MaterialFisicoID,
		MaterialVirtualID:       d.MaterialVirtualID,
		Tipo:                    d.Tipo,
		FechaVencimiento:        d.FechaVencimiento,
		Estado:                  d.Estado,
		FechaDevolucion:         d.FechaDevolucion,
	}

	if d.MaterialBibliografico != nil {
		resp.Titulo = d.MaterialBibliografico.Titulo
	}
	if d.MaterialFisico != nil {
		resp.CodigoEjemplar = d.MaterialFisico.CodigoEjemplar
	}

	return resp
}

// UsuarioResponse DTO
type UsuarioResponse struct {
	ID        uint      `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *Usuario) ToResponse() *UsuarioResponse {
	return &UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Staff & Auth
		&Usuario{},
		&RefreshToken{},
		// Catalog
		&Lector{},
		&Autor{},
		&Categoria{},
		&MaterialBibliografico{},
		&MaterialFisico{},
		&MaterialVirtual{},
		&AutorMaterial{},
		// Loans
		&Prestamo{},
		&PrestamoDetalle{},
	)
}
