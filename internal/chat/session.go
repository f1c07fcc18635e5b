package chat

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const sessionFile = "session"

// SessionStore owns the durable session identifier. The backend is
// authoritative once it assigns a session id; until then a client-generated
// uuid is used.
type SessionStore struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger

	current     string
	established bool
}

func NewSessionStore(fs afero.Fs, dir string, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		fs:     fs,
		path:   filepath.Join(dir, sessionFile),
		logger: logger,
	}
}

// GetOrCreate returns the stored session id, generating and persisting a new
// one when none exists yet. A failing state dir degrades to a per-process id.
func (s *SessionStore) GetOrCreate() string {
	if s.current != "" {
		return s.current
	}

	if data, err := afero.ReadFile(s.fs, s.path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			s.current = id
			return s.current
		}
	}

	s.current = uuid.NewString()

	if err := s.persist(); err != nil {
		s.logger.Warn("session id will not survive restarts",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}

	return s.current
}

// Current returns the held session id without creating one.
func (s *SessionStore) Current() string {
	return s.current
}

// Adopt records a backend-assigned session id. The stored value is rewritten
// only when the id actually changed.
func (s *SessionStore) Adopt(id string) {
	s.established = true

	if id == "" || id == s.current {
		return
	}

	s.logger.Debug("adopting backend session id", zap.String("session_id", id))

	s.current = id
	if err := s.persist(); err != nil {
		s.logger.Warn("persisting session id failed", zap.Error(err))
	}
}

// Established reports whether at least one successful backend exchange has
// confirmed the session id.
func (s *SessionStore) Established() bool {
	return s.established
}

// Clear forgets the session id in memory and on disk.
func (s *SessionStore) Clear() error {
	s.current = ""
	s.established = false

	if err := s.fs.Remove(s.path); err != nil && !isNotExist(err) {
		return err
	}

	return nil
}

func (s *SessionStore) persist() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	return afero.WriteFile(s.fs, s.path, []byte(s.current+"\n"), 0o600)
}
