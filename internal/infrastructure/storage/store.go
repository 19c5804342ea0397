// Package storage implements the flat-file student repository. The whole
// store is one JSON object mapping student id to the student payload; it
// is read wholesale at startup and rewritten wholesale on save.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/studytrack/core/internal/domain/entities"
	"github.com/studytrack/core/internal/infrastructure/logger"
)

// ErrInvalidCredentials covers both an unknown student id and a wrong
// password, deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("student not found or wrong credentials")

// Store maps student ids to student aggregates backed by a JSON file.
type Store struct {
	path     string
	students map[string]*entities.Student
	logger   *logger.Logger
}

// New creates an empty store bound to a file path. Call Load to populate it.
func New(path string, log *logger.Logger) *Store {
	return &Store{
		path:     path,
		students: map[string]*entities.Student{},
		logger:   log.WithComponent("storage"),
	}
}

// Load reads the whole store file. A missing file yields an empty store;
// unreadable or corrupt content also degrades to an empty store with a
// logged diagnostic, so a damaged file never takes the application down.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Infow("store file not found, starting with an empty store", "path", s.path)
		} else {
			s.logger.Warnw("store file unreadable, starting with an empty store", "path", s.path, "error", err)
		}
		s.students = map[string]*entities.Student{}
		return nil
	}

	decoded := map[string]*entities.Student{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.logger.Warnw("store file corrupt, starting with an empty store", "path", s.path, "error", err)
		s.students = map[string]*entities.Student{}
		return nil
	}

	// The id is the map key, not part of the payload; restore it here.
	// A null entry is corruption: drop it with a diagnostic rather than
	// carry a nil student into the session.
	for id, student := range decoded {
		if student == nil {
			s.logger.Warnw("dropping null student entry in store file", "path", s.path, "student_id", id)
			delete(decoded, id)
			continue
		}
		student.ID = id
	}
	s.students = decoded
	s.logger.Debugw("store loaded", "path", s.path, "students", len(decoded))
	return nil
}

// Save rewrites the whole store file. The write goes through a temp file
// and a rename so a crash mid-write cannot leave a truncated store.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.students, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	s.logger.Debugw("store saved", "path", s.path, "students", len(s.students))
	return nil
}

// Exists reports whether a student with the given id is registered.
func (s *Store) Exists(studentID string) bool {
	_, ok := s.students[studentID]
	return ok
}

// Authenticate returns the student only when the id is known and the
// password verifies. Unknown id and wrong password produce the same
// error; a malformed stored credential surfaces as its own error.
func (s *Store) Authenticate(studentID, password string) (*entities.Student, error) {
	student, ok := s.students[studentID]
	if !ok {
		return nil, ErrInvalidCredentials
	}

	verified, err := student.VerifyPassword(password)
	if err != nil {
		return nil, fmt.Errorf("stored credential for %q: %w", studentID, err)
	}
	if !verified {
		return nil, ErrInvalidCredentials
	}
	return student, nil
}

// Register inserts the student keyed by id, overwriting any existing
// record with that id, and persists immediately.
func (s *Store) Register(student *entities.Student) error {
	s.students[student.ID] = student
	if err := s.Save(); err != nil {
		return err
	}
	s.logger.Infow("student registered", "student_id", student.ID)
	return nil
}
