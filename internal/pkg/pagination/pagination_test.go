package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/pagination"
)

func TestNewParams(t *testing.T) {
	p := pagination.NewParams(3, 10)
	assert.Equal(t, 20, p.Offset)

	p = pagination.NewParams(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, pagination.DefaultLimit, p.Limit)

	p = pagination.NewParams(1, 1000)
	assert.Equal(t, pagination.MaxLimit, p.Limit)
}

func TestGetMeta(t *testing.T) {
	meta := pagination.GetMeta(pagination.NewParams(2, 10), 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = pagination.GetMeta(pagination.NewParams(1, 10), 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
}
