package services

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

// FormatoService keeps MaterialBibliografico.Formato in line with its active children
type FormatoService struct{}

// NewFormatoService creates a new format service
func NewFormatoService() *FormatoService {
	return &FormatoService{}
}

// Recalcular derives the format of bibID from its active physical copies and
// virtual record and writes it through tx. Callers pass the transaction that
// made the triggering change.
func (s *FormatoService) Recalcular(ctx context.Context, tx *gorm.DB, bibID uint) (domain.Formato, error) {
	formatos, err := s.RecalcularAll(ctx, tx, bibID)
	if err != nil {
		return "", err
	}
	return formatos[bibID], nil
}

// RecalcularAll recalculates several materials in one transaction. The
// material rows are locked first, in ascending id order, so two transactions
// changing children of the same material derive the format one after the
// other and each counts the children the other committed. Ids that do not
// exist are skipped.
func (s *FormatoService) RecalcularAll(ctx context.Context, tx *gorm.DB, bibIDs ...uint) (map[uint]domain.Formato, error) {
	materialRepo := repositories.NewMaterialBibliograficoRepository(tx)
	fisicoRepo := repositories.NewMaterialFisicoRepository(tx)
	virtualRepo := repositories.NewMaterialVirtualRepository(tx)

	locked, err := materialRepo.LockMany(ctx, bibIDs)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(locked))
	for id := range locked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	formatos := make(map[uint]domain.Formato, len(ids))
	for _, id := range ids {
		fisicos, err := fisicoRepo.CountActiveByMaterial(ctx, id)
		if err != nil {
			return nil, err
		}
		virtuales, err := virtualRepo.CountActiveByMaterial(ctx, id)
		if err != nil {
			return nil, err
		}

		formato := domain.DeriveFormato(fisicos > 0, virtuales > 0)
		if err := materialRepo.SetFormato(ctx, id, string(formato)); err != nil {
			return nil, err
		}
		formatos[id] = formato
	}
	return formatos, nil
}
