package domain

// Role represents a staff role in the system
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleBibliotecario Role = "BIBLIOTECARIO"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleBibliotecario
}

// TipoLector classifies readers
type TipoLector string

const (
	LectorEstudiante TipoLector = "ESTUDIANTE"
	LectorDocente    TipoLector = "DOCENTE"
	LectorExterno    TipoLector = "EXTERNO"
)

// IsValid reports whether t is a known reader type
func (t TipoLector) IsValid() bool {
	switch t {
	case LectorEstudiante, LectorDocente, LectorExterno:
		return true
	}
	return false
}

// Formato is the derived media classification of a bibliographic material
type Formato string

const (
	FormatoNinguno Formato = "NINGUNO"
	FormatoFisico  Formato = "FISICO"
	FormatoVirtual Formato = "VIRTUAL"
	FormatoMixto   Formato = "MIXTO"
)

// DeriveFormato maps "has an active physical copy" x "has an active virtual record"
// to the material format.
func DeriveFormato(hasFisico, hasVirtual bool) Formato {
	switch {
	case hasFisico && hasVirtual:
		return FormatoMixto
	case hasFisico:
		return FormatoFisico
	case hasVirtual:
		return FormatoVirtual
	default:
		return FormatoNinguno
	}
}

// EstadoFisico is the state of a physical copy. Stored as a free string.
type EstadoFisico string

const (
	EstadoDisponible EstadoFisico = "disponible"
	EstadoPrestado   EstadoFisico = "prestado"
	EstadoDanado     EstadoFisico = "dañado"
	EstadoPerdido    EstadoFisico = "perdido"
)

// IsValid reports whether e is part of the copy state vocabulary
func (e EstadoFisico) IsValid() bool {
	switch e {
	case EstadoDisponible, EstadoPrestado, EstadoDanado, EstadoPerdido:
		return true
	}
	return false
}

// ParseFinalState resolves the state a copy is left in after a return.
// nil or empty means disponible; prestado is not a valid final state.
func ParseFinalState(s *string) (EstadoFisico, error) {
	if s == nil || *s == "" {
		return EstadoDisponible, nil
	}
	switch e := EstadoFisico(*s); e {
	case EstadoDisponible, EstadoDanado, EstadoPerdido:
		return e, nil
	}
	return "", ErrInvalidFinalState
}

// EstadoPrestamo is the lifecycle status shared by loan headers and details
type EstadoPrestamo string

const (
	PrestamoVigente  EstadoPrestamo = "VIGENTE"
	PrestamoVencido  EstadoPrestamo = "VENCIDO"
	PrestamoDevuelto EstadoPrestamo = "DEVUELTO"
)

// TipoDetalle is the kind of item a loan detail points at
type TipoDetalle string

const (
	DetalleFisico  TipoDetalle = "FISICO"
	DetalleVirtual TipoDetalle = "VIRTUAL"
)
