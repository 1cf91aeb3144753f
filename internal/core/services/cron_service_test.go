package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
)

type fakeSweeper struct {
	calls  int
	result *services.SweepResult
	err    error
}

func (f *fakeSweeper) ExpireOverdue(ctx context.Context) (*services.SweepResult, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("sweep run without deadline")
	}
	return f.result, f.err
}

func TestCronService_RecordsLastRun(t *testing.T) {
	sweeper := &fakeSweeper{result: &services.SweepResult{DetallesVencidos: 2, PrestamosVencidos: 1}}
	svc := services.NewCronService(sweeper, "@every 1h")
	assert.Nil(t, svc.LastRun())

	svc.RunExpiration()

	last := svc.LastRun()
	require.NotNil(t, last)
	assert.True(t, last.Success)
	assert.Empty(t, last.Error)
	assert.Equal(t, int64(2), last.Result.DetallesVencidos)
	assert.Equal(t, 1, sweeper.calls)
}

func TestCronService_FailureIsRecorded(t *testing.T) {
	sweeper := &fakeSweeper{result: &services.SweepResult{}, err: errors.New("database is locked")}
	svc := services.NewCronService(sweeper, "@every 1h")

	svc.RunExpiration()
	last := svc.LastRun()
	require.NotNil(t, last)
	assert.False(t, last.Success)
	assert.Equal(t, "database is locked", last.Error)

	// the next run is unaffected
	sweeper.err = nil
	svc.RunExpiration()
	assert.True(t, svc.LastRun().Success)
	assert.Equal(t, 2, sweeper.calls)
}

func TestCronService_StartStop(t *testing.T) {
	svc := services.NewCronService(&fakeSweeper{}, "5 0 * * *")
	require.NoError(t, svc.Start())
	svc.Stop()

	bad := services.NewCronService(&fakeSweeper{}, "every midnight")
	assert.Error(t, bad.Start())
}
