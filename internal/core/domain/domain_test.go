package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

func TestAddBusinessDays(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{"monday plus three", day(2024, time.June, 3), 3, day(2024, time.June, 6)},
		{"thursday skips weekend", day(2024, time.June, 6), 3, day(2024, time.June, 11)},
		{"friday plus one is monday", day(2024, time.June, 7), 1, day(2024, time.June, 10)},
		{"saturday plus three", day(2024, time.June, 8), 3, day(2024, time.June, 12)},
		{"sunday plus one", day(2024, time.June, 9), 1, day(2024, time.June, 10)},
		{"zero days", day(2024, time.June, 8), 0, day(2024, time.June, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.AddBusinessDays(tt.from, tt.n))
		})
	}
}

func TestDeriveFormato(t *testing.T) {
	assert.Equal(t, domain.FormatoMixto, domain.DeriveFormato(true, true))
	assert.Equal(t, domain.FormatoFisico, domain.DeriveFormato(true, false))
	assert.Equal(t, domain.FormatoVirtual, domain.DeriveFormato(false, true))
	assert.Equal(t, domain.FormatoNinguno, domain.DeriveFormato(false, false))
}

func TestNewDetailTarget(t *testing.T) {
	id := uint(7)
	zero := uint(0)

	target, err := domain.NewDetailTarget(domain.DetalleFisico, &id, nil)
	require.NoError(t, err)
	assert.True(t, target.IsFisico())
	assert.Equal(t, &id, target.FisicoID())
	assert.Nil(t, target.VirtualID())

	target, err = domain.NewDetailTarget(domain.DetalleVirtual, nil, &id)
	require.NoError(t, err)
	assert.Equal(t, domain.DetalleVirtual, target.Kind())
	assert.Equal(t, uint(7), target.ID())
	assert.Nil(t, target.FisicoID())

	_, err = domain.NewDetailTarget(domain.DetalleFisico, nil, &id)
	assert.ErrorIs(t, err, domain.ErrDetailTargetMismatch)

	_, err = domain.NewDetailTarget(domain.DetalleFisico, &zero, nil)
	assert.ErrorIs(t, err, domain.ErrDetailTargetMismatch)

	_, err = domain.NewDetailTarget(domain.DetalleVirtual, &id, nil)
	assert.ErrorIs(t, err, domain.ErrDetailTargetMismatch)

	_, err = domain.NewDetailTarget("DIGITAL", &id, &id)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseFinalState(t *testing.T) {
	state, err := domain.ParseFinalState(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoDisponible, state)

	empty := ""
	state, err = domain.ParseFinalState(&empty)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoDisponible, state)

	for _, s := range []string{"disponible", "dañado", "perdido"} {
		s := s
		state, err = domain.ParseFinalState(&s)
		require.NoError(t, err)
		assert.Equal(t, domain.EstadoFisico(s), state)
	}

	for _, s := range []string{"prestado", "roto", "DISPONIBLE"} {
		s := s
		_, err = domain.ParseFinalState(&s)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

type activeFlag bool

func (a activeFlag) IsActive() bool { return bool(a) }

func TestRequireActive(t *testing.T) {
	assert.NoError(t, domain.RequireActive("lector", activeFlag(true)))

	err := domain.RequireActive("lector", activeFlag(false))
	assert.ErrorIs(t, err, domain.ErrDeactivated)
	assert.Contains(t, err.Error(), "lector")
}

func TestErrorCategories(t *testing.T) {
	assert.ErrorIs(t, domain.ErrReaderDelinquent, domain.ErrBusinessRule)
	assert.ErrorIs(t, domain.ErrDetalleNotFound, domain.ErrNotFound)
	assert.ErrorIs(t, domain.Duplicate("autor", "nombre"), domain.ErrDuplicateEntry)
	assert.ErrorIs(t, domain.ErrVirtualAlreadyExists, domain.ErrDuplicateEntry)
}
