package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"hoverclock/internal/core/model"
	"hoverclock/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.NewAt(filepath.Join(t.TempDir(), "settings.yaml"), zerolog.Nop())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, model.Default(), store.Load())
}

func TestRoundTrip(t *testing.T) {
	store := newTestStore(t)

	config := model.Default()
	config.Scale = 1.75
	config.Background = model.Color{R: 0.1, G: 0.2, B: 0.3, A: 0.8}
	config.Foreground = model.Color{R: 1, G: 0.9, B: 0.4, A: 1}
	config.Position = &model.Point{X: 1540, Y: 36}
	config.ShowSeconds = false
	config.EnabledMetrics[model.MetricCPU] = true
	config.EnabledMetrics[model.MetricNetwork] = true

	require.NoError(t, store.Save(config))
	assert.Equal(t, config, store.Load())

	// A second round trip must be identity as well.
	require.NoError(t, store.Save(store.Load()))
	assert.Equal(t, config, store.Load())
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{{{not yaml"), 0o644))

	assert.Equal(t, model.Default(), store.Load())
}

func TestLoadDefaultsMalformedFieldsIndividually(t *testing.T) {
	store := newTestStore(t)
	document := []byte(`
scale: 17.5
background: {r: 2.0, g: 0, b: 0, a: 1}
foreground: {r: 0.2, g: 0.3, b: 0.4, a: 1}
show_seconds: false
metrics: [cpu, teapot, gpu]
`)
	require.NoError(t, os.WriteFile(store.Path(), document, 0o644))

	config := store.Load()
	defaults := model.Default()

	// Out-of-range scale and background fall back; valid fields survive.
	assert.Equal(t, defaults.Scale, config.Scale)
	assert.Equal(t, defaults.Background, config.Background)
	assert.Equal(t, model.Color{R: 0.2, G: 0.3, B: 0.4, A: 1}, config.Foreground)
	assert.False(t, config.ShowSeconds)
	assert.True(t, config.ShowTimeSubtext)
	assert.True(t, config.MetricEnabled(model.MetricCPU))
	assert.True(t, config.MetricEnabled(model.MetricGPU))
	assert.Len(t, config.EnabledMetrics, 2)
}

func TestLoadSnapsOffStepScale(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("scale: 1.3\n"), 0o644))

	assert.Equal(t, 1.25, store.Load().Scale)
}

func TestSaveReplacesWholeDocument(t *testing.T) {
	store := newTestStore(t)

	first := model.Default()
	first.EnabledMetrics[model.MetricGPU] = true
	require.NoError(t, store.Save(first))

	second := model.Default()
	second.Scale = 2.0
	require.NoError(t, store.Save(second))

	loaded := store.Load()
	assert.Equal(t, 2.0, loaded.Scale)
	assert.False(t, loaded.MetricEnabled(model.MetricGPU))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(model.Default()))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.Path()), entries[0].Name())
}

func TestPositionOmittedWhenUnset(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(model.Default()))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "position")
	assert.Nil(t, store.Load().Position)
}
