package sportslink

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/mosfeq/sportslink/pkg/errors"
	"github.com/mosfeq/sportslink/pkg/events"
)

// cacheFile is the on-disk shape of the snapshot cache.
type cacheFile struct {
	Events []events.Event `yaml:"events"`
}

// saveCache writes the catalog snapshot to path as YAML.
func saveCache(path string, list []events.Event) error {
	data, err := yaml.Marshal(cacheFile{Events: list})
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// loadCache reads a previously saved snapshot.
func loadCache(path string) ([]events.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var file cacheFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return file.Events, nil
}
