package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/studytrack/core/internal/domain/credential"
	"github.com/studytrack/core/internal/domain/entities"
	"github.com/studytrack/core/internal/infrastructure/logger"
	"github.com/studytrack/core/internal/ports"
)

// Session is the explicit per-run state: the authenticated student and a
// session id used to correlate log entries. It replaces what would
// otherwise be process-global state.
type Session struct {
	ID      string
	Student *entities.Student
}

// SessionService handles the authenticate-or-register entry point used
// by the interactive layer.
type SessionService struct {
	repo   ports.StudentRepository
	logger *logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(repo ports.StudentRepository, log *logger.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		logger: log,
	}
}

// HasStudent reports whether a student id is already registered.
func (s *SessionService) HasStudent(studentID string) bool {
	return s.repo.Exists(studentID)
}

// Login authenticates a student and opens a session. Failed attempts are
// logged as security events; the returned error never reveals whether
// the id or the password was wrong.
func (s *SessionService) Login(studentID, password string) (*Session, error) {
	student, err := s.repo.Authenticate(studentID, password)
	if err != nil {
		if errors.Is(err, credential.ErrMalformedCredential) {
			s.logger.Errorw("stored credential is corrupt", "student_id", studentID, "error", err)
			return nil, err
		}
		s.logger.LogSecurityEvent("failed_login", studentID, nil)
		return nil, err
	}

	session := &Session{ID: uuid.NewString(), Student: student}
	s.logger.Infow("student logged in", "student_id", studentID, "session_id", session.ID)
	return session, nil
}

// Register creates a student with a freshly hashed credential, persists
// it immediately, and opens a session for it.
func (s *SessionService) Register(studentID, password string) (*Session, error) {
	student := entities.NewStudent(studentID, password)
	if err := s.repo.Register(student); err != nil {
		return nil, fmt.Errorf("failed to register student: %w", err)
	}

	session := &Session{ID: uuid.NewString(), Student: student}
	s.logger.Infow("student registered", "student_id", studentID, "session_id", session.ID)
	return session, nil
}

// Save persists the whole store.
func (s *SessionService) Save() error {
	return s.repo.Save()
}
