package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// readCollection loads a JSON array file into a slice. Load never fails the
// caller: an absent file is written out as an empty collection; an unreadable
// or malformed file degrades to an empty collection, and recovered reports
// that this happened so callers can surface the data loss.
func readCollection[T any](path string) (items []T, recovered bool) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := writeCollection(path, []T{}); err != nil {
			log.Error().Str("path", path).Err(err).Msg("data file create failed")
		}
		return nil, false
	}
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("data file unreadable, starting with empty collection")
		return nil, true
	}

	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("data file malformed, resetting to empty collection")
		if err := writeCollection(path, []T{}); err != nil {
			log.Error().Str("path", path).Err(err).Msg("data file reset failed")
		}
		return nil, true
	}
	return items, false
}

// writeCollection rewrites the whole file. Every mutation persists the full
// collection; there is no append mode.
func writeCollection(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
