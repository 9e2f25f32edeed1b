package ingest

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// SeedEntry is one line of the seed file.
type SeedEntry struct {
	ID      string `yaml:"id"`
	Enabled bool   `yaml:"enabled"`
}

// Validate checks that the entry names a cheatsheet.
func (e SeedEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
	)
}

// LoadSeed reads and parses the seed file at path.
func LoadSeed(path string) ([]SeedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed parses a YAML list of {id, enabled} entries. A missing enabled
// key means the entry is disabled.
func ParseSeed(data []byte) ([]SeedEntry, error) {
	var entries []SeedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
	}
	return entries, nil
}

// EnabledIDs returns the ids of enabled entries in file order.
func EnabledIDs(entries []SeedEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Enabled {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}
