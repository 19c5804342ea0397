package entities

import (
	"encoding/json"

	"github.com/studytrack/core/internal/domain/credential"
)

// Student is the aggregate root: an immutable identifier, a stored
// credential, and an ordered sequence of main tasks addressed by 1-based
// position. The identifier is deliberately excluded from the serialized
// payload; it travels as the map key in the store.
type Student struct {
	ID        string      `json:"-"`
	Password  string      `json:"password"`
	TaskLists []*MainTask `json:"task_lists"`
}

// NewStudent creates a student with a freshly hashed credential.
func NewStudent(id, password string) *Student {
	return &Student{
		ID:        id,
		Password:  credential.Hash(password),
		TaskLists: []*MainTask{},
	}
}

// VerifyPassword checks a candidate password against the stored
// credential. A malformed stored credential surfaces as
// credential.ErrMalformedCredential, not as a failed verification.
func (s *Student) VerifyPassword(candidate string) (bool, error) {
	return credential.Verify(s.Password, candidate)
}

// AddTaskList appends a main task to the student's ordered task lists.
func (s *Student) AddTaskList(task *MainTask) {
	s.TaskLists = append(s.TaskLists, task)
}

// DeleteTaskList removes the main task at the given 1-based position.
func (s *Student) DeleteTaskList(position int) error {
	if _, err := s.taskListAt(position); err != nil {
		return err
	}
	s.TaskLists = append(s.TaskLists[:position-1], s.TaskLists[position:]...)
	return nil
}

// EditTaskList overwrites the provided fields of the main task at the
// given position. No validation is applied beyond what the main task
// enforces itself.
func (s *Student) EditTaskList(position int, edit MainTaskEdit) error {
	task, err := s.taskListAt(position)
	if err != nil {
		return err
	}
	if edit.Name != nil {
		task.Name = *edit.Name
	}
	if edit.DueDate != nil {
		task.DueDate = edit.DueDate
	}
	if edit.Priority != nil {
		task.Priority = *edit.Priority
	}
	if edit.Status != nil {
		task.Status = *edit.Status
	}
	if edit.ClassCode != nil {
		task.ClassCode = edit.ClassCode
	}
	return nil
}

// TaskListAt returns the main task at the given 1-based position.
func (s *Student) TaskListAt(position int) (*MainTask, error) {
	return s.taskListAt(position)
}

// ViewTaskLists returns a snapshot of the ordered main-task sequence.
func (s *Student) ViewTaskLists() []*MainTask {
	return append([]*MainTask{}, s.TaskLists...)
}

// ViewAllSubTasks flattens the sub-tasks of every main task, in main-task
// order then sub-task order within each.
func (s *Student) ViewAllSubTasks() []*SubTask {
	all := []*SubTask{}
	for _, task := range s.TaskLists {
		all = append(all, task.SubTasks...)
	}
	return all
}

func (s *Student) taskListAt(position int) (*MainTask, error) {
	if position < 1 || position > len(s.TaskLists) {
		return nil, ErrIndexOutOfRange
	}
	return s.TaskLists[position-1], nil
}

func (s *Student) UnmarshalJSON(data []byte) error {
	type alias Student
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	// Normalize a missing task_lists array and drop null elements so a
	// damaged file cannot plant nil main tasks in the ordered sequence.
	lists := make([]*MainTask, 0, len(decoded.TaskLists))
	for _, task := range decoded.TaskLists {
		if task != nil {
			lists = append(lists, task)
		}
	}
	decoded.TaskLists = lists
	*s = Student(decoded)
	return nil
}
