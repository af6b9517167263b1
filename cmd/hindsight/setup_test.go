package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hindsightlabs/hindsight/internal/config"
	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBars(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	data := "timestamp,open,high,low,close,volume\n" + rows
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadData(t *testing.T) {
	env := &environment{cfg: config.Defaults()}
	path := writeBars(t, "2024-01-02,100,105,99,104,1000\n2024-01-03,104,110,103,109,1500\n")

	bars, settings, err := env.loadData(path, "BTC-USD")
	require.NoError(t, err)
	assert.Len(t, bars, 2)
	assert.Equal(t, "BTC-USD", bars[0].Symbol)
	assert.NoError(t, settings.Validate())
}

func TestLoadData_NoFileConfigured(t *testing.T) {
	env := &environment{cfg: config.Defaults()}

	_, _, err := env.loadData("", "")
	assert.ErrorIs(t, err, core.ErrConfigMissing)
}

func TestLoadData_SingleBarRejected(t *testing.T) {
	env := &environment{cfg: config.Defaults()}
	path := writeBars(t, "2024-01-02,100,105,99,104,1000\n")

	_, _, err := env.loadData(path, "TEST")
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}
