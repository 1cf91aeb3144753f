package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/logger"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/metrics"
)

// PrestamoService runs the loan workflow: creation, listing, per-detail
// return and the overdue sweep. All multi-row writes share one transaction.
type PrestamoService struct {
	db           *gorm.DB
	repo         *repositories.PrestamoRepository
	formato      *FormatoService
	businessDays int
	now          func() time.Time
	log          zerolog.Logger
}

// NewPrestamoService creates a new loan service. businessDays below 1 falls
// back to domain.DefaultLoanBusinessDays.
func NewPrestamoService(db *gorm.DB, formato *FormatoService, businessDays int) *PrestamoService {
	if businessDays < 1 {
		businessDays = domain.DefaultLoanBusinessDays
	}
	return &PrestamoService{
		db:           db,
		repo:         repositories.NewPrestamoRepository(db),
		formato:      formato,
		businessDays: businessDays,
		now:          time.Now,
		log:          logger.Component("prestamos"),
	}
}

// WithClock replaces the clock used for loan, due and return timestamps
func (s *PrestamoService) WithClock(now func() time.Time) *PrestamoService {
	s.now = now
	return s
}

// ============================================================
// Input DTOs
// ============================================================

// CreatePrestamoInput represents create loan input. The operator is never
// taken from the body.
type CreatePrestamoInput struct {
	LectorID    uint                 `json:"lector_id"`
	Observacion *string              `json:"observacion"`
	Detalles    []CreateDetalleInput `json:"detalles"`
}

// CreateDetalleInput is one requested item
type CreateDetalleInput struct {
	MaterialBibliograficoID uint   `json:"material_bibliografico_id"`
	MaterialFisicoID        *uint  `json:"material_fisico_id"`
	MaterialVirtualID       *uint  `json:"material_virtual_id"`
	Tipo                    string `json:"tipo"`
}

// ReturnDetalleInput represents the return body
type ReturnDetalleInput struct {
	EstadoFinal *string `json:"estado_final"`
}

// SweepResult reports one run of the overdue sweep
type SweepResult struct {
	DetallesVencidos  int64     `json:"detalles_vencidos"`
	PrestamosVencidos int64     `json:"prestamos_vencidos"`
	EjecutadoEn       time.Time `json:"ejecutado_en"`
}

// requestedDetalle is a validated detail request
type requestedDetalle struct {
	materialID uint
	target     domain.DetailTarget
}

// parseDetalles validates shapes before anything touches the database
func parseDetalles(in []CreateDetalleInput) ([]requestedDetalle, error) {
	if len(in) == 0 {
		return nil, domain.ErrEmptyLoan
	}

	out := make([]requestedDetalle, 0, len(in))
	for i, d := range in {
		if d.MaterialBibliograficoID == 0 {
			return nil, fmt.Errorf("detalle %d: %w", i+1, domain.Invalid("material_bibliografico_id is required"))
		}
		tipo := domain.TipoDetalle(strings.ToUpper(strings.TrimSpace(d.Tipo)))
		target, err := domain.NewDetailTarget(tipo, d.MaterialFisicoID, d.MaterialVirtualID)
		if err != nil {
			return nil, fmt.Errorf("detalle %d: %w", i+1, err)
		}
		out = append(out, requestedDetalle{materialID: d.MaterialBibliograficoID, target: target})
	}
	return out, nil
}

// ============================================================
// Create
// ============================================================

// Create registers a loan for a reader on behalf of operatorID. Either the
// header and every detail are persisted, or nothing is.
func (s *PrestamoService) Create(ctx context.Context, input *CreatePrestamoInput, operatorID uint) (*models.Prestamo, error) {
	detalles, err := parseDetalles(input.Detalles)
	if err != nil {
		return nil, err
	}
	if input.LectorID == 0 {
		return nil, domain.Invalid("lector_id is required")
	}

	now := s.now()
	prestamo := &models.Prestamo{
		LectorID:         input.LectorID,
		UsuarioID:        operatorID,
		FechaPrestamo:    now,
		FechaVencimiento: domain.AddBusinessDays(now, s.businessDays),
		Estado:           string(domain.PrestamoVigente),
		Observacion:      normalizeObservacion(input.Observacion),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkParticipants(ctx, tx, input.LectorID, operatorID); err != nil {
			return err
		}

		// Copies are locked up front in id order so concurrent loans touching
		// the same copies always queue in the same sequence.
		copias, err := repositories.NewMaterialFisicoRepository(tx).LockMany(ctx, fisicoIDs(detalles))
		if err != nil {
			return err
		}

		repo := s.repo.WithTx(tx)
		if err := repo.CreateHeader(ctx, prestamo); err != nil {
			return err
		}

		prestamo.Detalles = make([]models.PrestamoDetalle, 0, len(detalles))
		for i, d := range detalles {
			if err := s.reserve(ctx, tx, d, copias); err != nil {
				return fmt.Errorf("detalle %d: %w", i+1, err)
			}

			detalle := models.PrestamoDetalle{
				PrestamoID:              prestamo.ID,
				MaterialBibliograficoID: d.materialID,
				MaterialFisicoID:        d.target.FisicoID(),
				MaterialVirtualID:       d.target.VirtualID(),
				Tipo:                    string(d.target.Kind()),
				FechaVencimiento:        prestamo.FechaVencimiento,
				Estado:                  string(domain.PrestamoVigente),
			}
			if err := repo.CreateDetalle(ctx, &detalle); err != nil {
				return err
			}
			prestamo.Detalles = append(prestamo.Detalles, detalle)
		}

		_, err = s.formato.RecalcularAll(ctx, tx, fisicoMaterialIDs(detalles)...)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.PrestamosCreados.Inc()
	s.log.Info().
		Uint(logger.ID, prestamo.ID).
		Uint("lector_id", prestamo.LectorID).
		Int(logger.COUNT, len(prestamo.Detalles)).
		Time("fecha_vencimiento", prestamo.FechaVencimiento).
		Msg("prestamo created")

	return prestamo, nil
}

// checkParticipants requires an active, non-delinquent reader and an active operator
func (s *PrestamoService) checkParticipants(ctx context.Context, tx *gorm.DB, lectorID, operatorID uint) error {
	lector, err := repositories.NewLectorRepository(tx).GetByID(ctx, lectorID)
	if err != nil {
		return translate(err, domain.ErrLectorNotFound)
	}
	if err := domain.RequireActive("lector", lector); err != nil {
		return err
	}

	operador, err := repositories.NewUsuarioRepository(tx).GetByID(ctx, operatorID)
	if err != nil {
		return translate(err, domain.ErrUsuarioNotFound)
	}
	if err := domain.RequireActive("usuario", operador); err != nil {
		return err
	}

	delinquent, err := s.repo.WithTx(tx).IsLectorDelinquent(ctx, lectorID)
	if err != nil {
		return err
	}
	if delinquent {
		return domain.ErrReaderDelinquent
	}
	return nil
}

// reserve validates one detail against current state and, for a physical
// copy, flips it to prestado
func (s *PrestamoService) reserve(ctx context.Context, tx *gorm.DB, d requestedDetalle, copias map[uint]*models.MaterialFisico) error {
	material, err := repositories.NewMaterialBibliograficoRepository(tx).GetByID(ctx, d.materialID)
	if err != nil {
		return translate(err, domain.ErrMaterialNotFound)
	}
	if err := domain.RequireActive("material bibliografico", material); err != nil {
		return err
	}

	if !d.target.IsFisico() {
		virtual, err := repositories.NewMaterialVirtualRepository(tx).GetByID(ctx, d.target.ID())
		if err != nil {
			return translate(err, domain.ErrVirtualNotFound)
		}
		if err := domain.RequireActive("material virtual", virtual); err != nil {
			return err
		}
		if virtual.MaterialBibliograficoID != material.ID {
			return domain.ErrCopyWrongMaterial
		}
		return nil
	}

	copia, ok := copias[d.target.ID()]
	if !ok {
		return domain.ErrFisicoNotFound
	}
	if err := domain.RequireActive("material fisico", copia); err != nil {
		return err
	}
	if copia.MaterialBibliograficoID != material.ID {
		return domain.ErrCopyWrongMaterial
	}
	if copia.Estado != string(domain.EstadoDisponible) {
		return domain.ErrCopyNotAvailable
	}

	if err := repositories.NewMaterialFisicoRepository(tx).SetEstado(ctx, copia.ID, string(domain.EstadoPrestado)); err != nil {
		return err
	}
	// the same copy requested twice must fail on the second detail
	copia.Estado = string(domain.EstadoPrestado)
	return nil
}

func fisicoIDs(detalles []requestedDetalle) []uint {
	ids := make([]uint, 0, len(detalles))
	for _, d := range detalles {
		if d.target.IsFisico() {
			ids = append(ids, d.target.ID())
		}
	}
	return ids
}

func fisicoMaterialIDs(detalles []requestedDetalle) []uint {
	ids := make([]uint, 0, len(detalles))
	for _, d := range detalles {
		if d.target.IsFisico() {
			ids = append(ids, d.materialID)
		}
	}
	return ids
}

func normalizeObservacion(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ============================================================
// Read
// ============================================================

// List returns every loan newest first with reader, operator and details
func (s *PrestamoService) List(ctx context.Context) ([]*models.Prestamo, error) {
	return s.repo.List(ctx)
}

// GetByID gets one loan with reader, operator and details
func (s *PrestamoService) GetByID(ctx context.Context, id uint) (*models.Prestamo, error) {
	prestamo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrPrestamoNotFound)
	}
	return prestamo, nil
}

// ============================================================
// Return
// ============================================================

// ReturnDetail resolves one loan detail. finalState sets the copy's estado
// for FISICO details (nil means disponible). The header closes when this was
// its last pending detail.
func (s *PrestamoService) ReturnDetail(ctx context.Context, detailID uint, finalState *string) (*models.PrestamoDetalle, error) {
	estadoFinal, err := domain.ParseFinalState(finalState)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var detalle *models.PrestamoDetalle
	var closed bool

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		headerID, err := repo.HeaderIDOfDetalle(ctx, detailID)
		if err != nil {
			return translate(err, domain.ErrDetalleNotFound)
		}

		// The header lock comes before every other read of the loan. Returns on
		// the same loan run one at a time, and the pending count below is taken
		// after the previous return committed.
		header, err := repo.LockPrestamo(ctx, headerID)
		if err != nil {
			return translate(err, domain.ErrPrestamoNotFound)
		}

		d, err := repo.LockDetalle(ctx, detailID)
		if err != nil {
			return translate(err, domain.ErrDetalleNotFound)
		}
		if d.Estado == string(domain.PrestamoDevuelto) {
			return domain.ErrDetailAlreadyReturned
		}

		if err := repo.MarkDetalleDevuelto(ctx, d.ID, now); err != nil {
			return err
		}
		d.Estado = string(domain.PrestamoDevuelto)
		d.FechaDevolucion = &now

		if d.Tipo == string(domain.DetalleFisico) && d.MaterialFisicoID != nil {
			if err := s.restoreCopy(ctx, tx, *d.MaterialFisicoID, estadoFinal); err != nil {
				return err
			}
		}

		pendientes, err := repo.CountPendientes(ctx, header.ID)
		if err != nil {
			return err
		}
		if pendientes == 0 && header.Estado != string(domain.PrestamoDevuelto) {
			if err := repo.ClosePrestamo(ctx, header.ID, now); err != nil {
				return err
			}
			closed = true
		}

		detalle = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	label := string(estadoFinal)
	if detalle.Tipo == string(domain.DetalleVirtual) {
		label = "virtual"
	}
	metrics.DetallesDevueltos.WithLabelValues(label).Inc()

	s.log.Info().
		Uint(logger.ID, detalle.ID).
		Uint("prestamo_id", detalle.PrestamoID).
		Str("estado_final", label).
		Bool("prestamo_cerrado", closed).
		Msg("detalle returned")

	return detalle, nil
}

// restoreCopy writes the final estado of a returned copy and recalculates its material
func (s *PrestamoService) restoreCopy(ctx context.Context, tx *gorm.DB, copyID uint, estado domain.EstadoFisico) error {
	fisicoRepo := repositories.NewMaterialFisicoRepository(tx)

	copia, err := fisicoRepo.LockByID(ctx, copyID)
	if err != nil {
		return translate(err, domain.ErrFisicoNotFound)
	}
	if err := fisicoRepo.SetEstado(ctx, copia.ID, string(estado)); err != nil {
		return err
	}
	_, err = s.formato.Recalcular(ctx, tx, copia.MaterialBibliograficoID)
	return err
}

// ============================================================
// Expiration sweep
// ============================================================

// ExpireOverdue moves every VIGENTE detail and header whose due date has
// passed to VENCIDO. The two updates are independent; both run even if one
// fails. Running it again with no loan activity in between matches nothing.
func (s *PrestamoService) ExpireOverdue(ctx context.Context) (*SweepResult, error) {
	now := s.now()
	result := &SweepResult{EjecutadoEn: now}

	detalles, errDetalles := s.repo.ExpireDetalles(ctx, now)
	if errDetalles == nil {
		result.DetallesVencidos = detalles
		metrics.BarridoVencidos.WithLabelValues("prestamo_detalles").Add(float64(detalles))
	}

	prestamos, errPrestamos := s.repo.ExpirePrestamos(ctx, now)
	if errPrestamos == nil {
		result.PrestamosVencidos = prestamos
		metrics.BarridoVencidos.WithLabelValues("prestamos").Add(float64(prestamos))
	}

	if err := errors.Join(errDetalles, errPrestamos); err != nil {
		s.log.Error().Err(err).Msg("expiration sweep failed")
		return result, err
	}

	s.log.Info().
		Int64("detalles_vencidos", result.DetallesVencidos).
		Int64("prestamos_vencidos", result.PrestamosVencidos).
		Msg("expiration sweep finished")
	return result, nil
}
