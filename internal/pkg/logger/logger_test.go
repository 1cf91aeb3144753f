package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/logger"
)

func TestSetupWriterProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger.SetupWriter("prod", &buf)

	log.Debug().Msg("hidden")
	log.Info().Str(logger.COUNT, "3").Msg("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "3", entry[logger.COUNT])
}

func TestFiberWriterTrimsNewline(t *testing.T) {
	var buf bytes.Buffer
	l := logger.SetupWriter("prod", &buf)

	w := logger.FiberWriter{Logger: l}
	n, err := w.Write([]byte("GET /health 200\n"))
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Contains(t, buf.String(), `"message":"GET /health 200"`)
}
