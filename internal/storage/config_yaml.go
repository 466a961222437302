package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hoverclock/internal/core/model"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Store persists the configuration document as YAML at a fixed per-user
// path. It is the sole owner of the on-disk state.
type Store struct {
	path string
	log  zerolog.Logger
}

// yamlConfig is the on-disk schema. Pointer fields distinguish an absent key
// from a present zero value so each field can be defaulted individually.
type yamlConfig struct {
	Scale           *float64     `yaml:"scale"`
	Background      *model.Color `yaml:"background"`
	Foreground      *model.Color `yaml:"foreground"`
	Position        *model.Point `yaml:"position,omitempty"`
	ShowSeconds     *bool        `yaml:"show_seconds"`
	ShowTimeSubtext *bool        `yaml:"show_time_subtext"`
	Metrics         []string     `yaml:"metrics"`
}

// New creates a store rooted at the OS config directory for appName.
func New(appName string, log zerolog.Logger) (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return &Store{
		path: filepath.Join(configDir, appName, settingsFileName),
		log:  log,
	}, nil
}

// NewAt creates a store backed by an explicit file path.
func NewAt(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

// Path returns the backing file location.
func (store *Store) Path() string {
	return store.path
}

// Load reads the persisted configuration. A missing, unreadable or
// unparsable file yields the defaults; an individually malformed field is
// replaced by its own default without discarding the rest of the document.
// Load never fails outward.
func (store *Store) Load() model.Config {
	config := model.Default()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			store.log.Warn().Err(err).Str("path", store.path).Msg("read settings file, using defaults")
		}
		return config
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		store.log.Warn().Err(err).Str("path", store.path).Msg("parse settings yaml, using defaults")
		return config
	}

	applyFileConfig(&config, fileData)
	return config
}

// Save durably persists config, replacing the backing file entirely. The
// document is written to a temporary file and renamed into place so a crash
// mid-write cannot leave a half-written document.
func (store *Store) Save(config model.Config) error {
	fileData := yamlConfig{
		Scale:           &config.Scale,
		Background:      &config.Background,
		Foreground:      &config.Foreground,
		Position:        config.Position,
		ShowSeconds:     &config.ShowSeconds,
		ShowTimeSubtext: &config.ShowTimeSubtext,
		Metrics:         enabledMetricNames(config),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(directory, settingsFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(serialized); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close temp settings file: %w", err)
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func applyFileConfig(config *model.Config, fileData yamlConfig) {
	if fileData.Scale != nil && *fileData.Scale >= model.ScaleMin && *fileData.Scale <= model.ScaleMax {
		config.Scale = model.SnapScale(*fileData.Scale)
	}
	if fileData.Background != nil && fileData.Background.Valid() {
		config.Background = *fileData.Background
	}
	if fileData.Foreground != nil && fileData.Foreground.Valid() {
		config.Foreground = *fileData.Foreground
	}
	if fileData.Position != nil {
		position := *fileData.Position
		config.Position = &position
	}
	if fileData.ShowSeconds != nil {
		config.ShowSeconds = *fileData.ShowSeconds
	}
	if fileData.ShowTimeSubtext != nil {
		config.ShowTimeSubtext = *fileData.ShowTimeSubtext
	}
	for _, name := range fileData.Metrics {
		metric := model.Metric(name)
		if model.KnownMetric(metric) {
			config.EnabledMetrics[metric] = true
		}
	}
}

func enabledMetricNames(config model.Config) []string {
	var names []string
	for _, metric := range model.AllMetrics() {
		if config.MetricEnabled(metric) {
			names = append(names, string(metric))
		}
	}
	return names
}
