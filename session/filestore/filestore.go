// Package filestore persists the session as a JSON file, the local
// equivalent of the browser storage the web client uses.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/DrewAMSD/lifting-log/session"
	"github.com/pkg/errors"
)

var _ session.Store = (*Store)(nil)

// Store reads and writes the session file. Permissions are owner-only:
// the file holds live credentials.
type Store struct {
	path string
}

// New creates a Store backed by the file at path. The file need not
// exist yet.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("[filestore.New] path is required")
	}
	return &Store{path: path}, nil
}

// Load returns the stored session, or (nil, nil) when the file is
// missing or unreadable as a session. Corrupt state reads as logged
// out rather than failing startup.
func (s *Store) Load() (*session.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "[Store.Load] read session file")
	}

	var stored session.Session
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, nil
	}
	return &stored, nil
}

// Save writes atomically: temp file then rename, so a crash mid-write
// leaves either the old session or the new one, never a torn file.
func (s *Store) Save(sess *session.Session) error {
	if sess == nil {
		return errors.New("[Store.Save] session is required")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "[Store.Save] marshal session")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "[Store.Save] create state directory")
	}
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return errors.Wrap(err, "[Store.Save] write temp file")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return errors.Wrap(err, "[Store.Save] rename temp file")
	}
	return nil
}

// Clear removes the session file. Clearing an absent file is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[Store.Clear] remove session file")
	}
	return nil
}
