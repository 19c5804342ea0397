package entities

import (
	"encoding/json"
	"strings"
)

// MainTask is a top-level unit of work owning an ordered sequence of
// sub-tasks. Sub-tasks are addressed by 1-based position; deleting a
// sub-task shifts the positions of the ones after it down by one.
type MainTask struct {
	Name      string     `json:"name"`
	DueDate   *Date      `json:"due_date"`
	Priority  Priority   `json:"priority"`
	Status    Status     `json:"status"`
	ClassCode *string    `json:"class_code"`
	SubTasks  []*SubTask `json:"sub_tasks"`
}

// NewMainTask creates a main task with no sub-tasks. A nil dueDate or
// classCode means the field is absent.
func NewMainTask(name string, dueDate *Date, priority Priority, status Status, classCode *string) *MainTask {
	return &MainTask{
		Name:      name,
		DueDate:   dueDate,
		Priority:  priority,
		Status:    status,
		ClassCode: classCode,
		SubTasks:  []*SubTask{},
	}
}

// AddSubTask appends a sub-task. If both due dates are set, the
// sub-task's due date must not be after the main task's.
func (m *MainTask) AddSubTask(sub *SubTask) error {
	if m.DueDate != nil && sub.DueDate != nil && sub.DueDate.After(*m.DueDate) {
		return ErrSubTaskDueAfterMain
	}
	m.SubTasks = append(m.SubTasks, sub)
	return nil
}

// DeleteSubTask removes the sub-task at the given 1-based position.
func (m *MainTask) DeleteSubTask(position int) error {
	if _, err := m.subTaskAt(position); err != nil {
		return err
	}
	m.SubTasks = append(m.SubTasks[:position-1], m.SubTasks[position:]...)
	return nil
}

// MarkSubTaskCompleted marks the sub-task at the given position completed.
func (m *MainTask) MarkSubTaskCompleted(position int) error {
	sub, err := m.subTaskAt(position)
	if err != nil {
		return err
	}
	sub.MarkCompleted()
	return nil
}

// EditSubTask overwrites the provided fields of the sub-task at the given
// position. The edit is atomic: a due date that violates the containment
// invariant rejects the whole call and leaves every field untouched.
func (m *MainTask) EditSubTask(position int, edit SubTaskEdit) error {
	sub, err := m.subTaskAt(position)
	if err != nil {
		return err
	}
	if edit.DueDate != nil && m.DueDate != nil && edit.DueDate.After(*m.DueDate) {
		return ErrSubTaskDueAfterMain
	}
	if edit.Details != nil {
		sub.Details = *edit.Details
	}
	if edit.DueDate != nil {
		sub.DueDate = edit.DueDate
	}
	if edit.Priority != nil {
		sub.Priority = *edit.Priority
	}
	return nil
}

// MarkCompleted sets the status to Completed regardless of the completion
// state of the sub-tasks.
func (m *MainTask) MarkCompleted() {
	m.Status = StatusCompleted
}

// ViewSubTasks returns a snapshot of the ordered sub-task sequence.
func (m *MainTask) ViewSubTasks() []*SubTask {
	return append([]*SubTask{}, m.SubTasks...)
}

// SearchSubTasks returns a snapshot of the sub-tasks whose details
// contain the keyword, case-insensitively. An empty keyword matches all.
func (m *MainTask) SearchSubTasks(keyword string) []*SubTask {
	if keyword == "" {
		return m.ViewSubTasks()
	}
	needle := strings.ToLower(keyword)
	results := []*SubTask{}
	for _, sub := range m.SubTasks {
		if strings.Contains(strings.ToLower(sub.Details), needle) {
			results = append(results, sub)
		}
	}
	return results
}

func (m *MainTask) subTaskAt(position int) (*SubTask, error) {
	if position < 1 || position > len(m.SubTasks) {
		return nil, ErrIndexOutOfRange
	}
	return m.SubTasks[position-1], nil
}

func (m *MainTask) UnmarshalJSON(data []byte) error {
	type alias MainTask
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	// Normalize a missing sub_tasks array and drop null elements so a
	// damaged file cannot plant nil sub-tasks in the ordered sequence.
	subs := make([]*SubTask, 0, len(decoded.SubTasks))
	for _, sub := range decoded.SubTasks {
		if sub != nil {
			subs = append(subs, sub)
		}
	}
	decoded.SubTasks = subs
	*m = MainTask(decoded)
	return nil
}

// MainTaskEdit carries the fields of a main-task edit; nil means "leave
// unchanged".
type MainTaskEdit struct {
	Name      *string
	DueDate   *Date
	Priority  *Priority
	Status    *Status
	ClassCode *string
}
