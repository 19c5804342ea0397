package ports

import (
	"github.com/studytrack/core/internal/domain/entities"
)

// StudentRepository defines the interface for student data operations.
// The store is single-user and synchronous: it is loaded once at startup
// and persisted wholesale on explicit save, never per mutation.
type StudentRepository interface {
	Load() error
	Save() error
	Exists(studentID string) bool
	Authenticate(studentID, password string) (*entities.Student, error)
	Register(student *entities.Student) error
}
