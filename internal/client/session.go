package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// SessionStore is the persistent key-value stash for the login session.
// Exactly two keys are kept, userToken and username; every Save fully
// overwrites the prior session.
type SessionStore struct {
	path string
}

type sessionData struct {
	UserToken string `json:"userToken"`
	Username  string `json:"username"`
}

// NewSessionStore stores the session at path, defaulting to
// reviewctl/session.json under the user config directory.
func NewSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, apperror.Wrap(apperror.KindUnknown, err, "cannot resolve config directory")
		}
		path = filepath.Join(dir, "reviewctl", "session.json")
	}
	return &SessionStore{path: path}, nil
}

// Save overwrites the stored session with the new token and username.
func (s *SessionStore) Save(token, username string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return apperror.Wrap(apperror.KindUnknown, err, "cannot create session directory")
	}
	data, err := json.Marshal(sessionData{UserToken: token, Username: username})
	if err != nil {
		return apperror.Wrap(apperror.KindUnknown, err, "cannot encode session")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return apperror.Wrap(apperror.KindUnknown, err, "cannot write session file")
	}
	return nil
}

func (s *SessionStore) load() sessionData {
	var data sessionData
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return data
	}
	_ = json.Unmarshal(raw, &data)
	return data
}

// Token returns the stored userToken, or empty when logged out.
func (s *SessionStore) Token() string { return s.load().UserToken }

// Username returns the stored username, or empty when logged out.
func (s *SessionStore) Username() string { return s.load().Username }

// Clear removes the stored session.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return apperror.Wrap(apperror.KindUnknown, err, "cannot remove session file")
	}
	return nil
}
