package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalerrors "github.com/harborwatch/agent/internal/errors"
	models "github.com/harborwatch/agent/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testProcPaths(t *testing.T) procPaths {
	t.Helper()
	dir := t.TempDir()
	return procPaths{
		stat: writeFile(t, dir, "stat",
			"cpu  100 0 50 800 10 0 0 0 0 0\nctxt 123456\nbtime 1700000000\nintr 654321 0 1 2\n"),
		fileNr:  writeFile(t, dir, "file-nr", "512\t0\t9223372036854775807\n"),
		entropy: writeFile(t, dir, "entropy_avail", "3840\n"),
	}
}

func TestRegistryCoversClosedMetricSet(t *testing.T) {
	registry := newRegistry(testProcPaths(t))
	for _, id := range models.CargoIDs {
		_, ok := registry.entries[id]
		assert.True(t, ok, "no collector registered for %s", id)
	}
	assert.Len(t, registry.entries, len(models.CargoIDs))
}

func TestRegistryUnknownMetric(t *testing.T) {
	registry := newRegistry(testProcPaths(t))
	_, err := registry.Collect("warp_core_pressure")
	assert.ErrorIs(t, err, internalerrors.ErrUnknownMetric)
}

func TestRegistryRateBasedFlags(t *testing.T) {
	registry := newRegistry(testProcPaths(t))

	rated := []string{
		models.CargoNetworkIn, models.CargoNetworkOut,
		models.CargoNetworkErrors, models.CargoNetworkDrops,
		models.CargoDiskIO, models.CargoDiskRead, models.CargoDiskWrite,
		models.CargoContextSwitches, models.CargoInterrupts,
	}
	for _, id := range rated {
		assert.True(t, registry.RateBased(id), "%s should be rate-based", id)
	}

	gauges := []string{
		models.CargoCPUUsage, models.CargoRAMUsage, models.CargoUptime,
		models.CargoEntropy, models.CargoOpenFiles, models.CargoTemperature,
	}
	for _, id := range gauges {
		assert.False(t, registry.RateBased(id), "%s should be a gauge", id)
	}
}

func TestRegistryReadsPseudoFiles(t *testing.T) {
	registry := newRegistry(testProcPaths(t))

	tests := []struct {
		cargo string
		want  float64
	}{
		{models.CargoContextSwitches, 123456},
		{models.CargoInterrupts, 654321},
		{models.CargoOpenFiles, 512},
		{models.CargoEntropy, 3840},
	}
	for _, tt := range tests {
		readings, err := registry.Collect(tt.cargo)
		require.NoError(t, err, tt.cargo)
		require.Len(t, readings, 1, tt.cargo)
		assert.Equal(t, tt.cargo, readings[0].Cargo)
		assert.Equal(t, tt.want, readings[0].Value)
	}
}

func TestRegistryMemoizesMissingSource(t *testing.T) {
	paths := testProcPaths(t)
	missing := filepath.Join(t.TempDir(), "entropy_avail")
	paths.entropy = missing

	registry := newRegistry(paths)

	_, err := registry.Collect(models.CargoEntropy)
	require.Error(t, err)
	assert.ErrorIs(t, err, internalerrors.ErrCollectionFailed)
	assert.ErrorIs(t, err, internalerrors.ErrSourceMissing)

	// The probe ran once at construction; a file created later is ignored.
	require.NoError(t, os.WriteFile(missing, []byte("100\n"), 0644))
	_, err = registry.Collect(models.CargoEntropy)
	assert.ErrorIs(t, err, internalerrors.ErrSourceMissing)
}

func TestRegistryFailureDoesNotAffectOtherMetrics(t *testing.T) {
	paths := testProcPaths(t)
	paths.entropy = filepath.Join(t.TempDir(), "gone")
	registry := newRegistry(paths)

	_, err := registry.Collect(models.CargoEntropy)
	require.Error(t, err)

	readings, err := registry.Collect(models.CargoOpenFiles)
	require.NoError(t, err)
	assert.Equal(t, 512.0, readings[0].Value)
}

func TestReadProcFirstField(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "ok", "42 7 9\n")
	value, err := readProcFirstField(path)
	require.NoError(t, err)
	assert.Equal(t, 42.0, value)

	empty := writeFile(t, dir, "empty", "")
	_, err = readProcFirstField(empty)
	assert.Error(t, err)

	garbage := writeFile(t, dir, "garbage", "not-a-number\n")
	_, err = readProcFirstField(garbage)
	assert.Error(t, err)
}

func TestReadProcStatCounterMissingKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "stat", "cpu 1 2 3\n")
	_, err := readProcStatCounter(path, "ctxt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ctxt")
}
