package entities

// SubTask is the leaf unit of work, owned by exactly one MainTask.
type SubTask struct {
	Details   string   `json:"details"`
	DueDate   *Date    `json:"due_date"`
	Priority  Priority `json:"priority"`
	ClassCode string   `json:"class_code"`
	Completed bool     `json:"completed"`
}

// NewSubTask creates a sub-task. A nil dueDate means no due date.
func NewSubTask(details string, dueDate *Date, priority Priority, classCode string) *SubTask {
	return &SubTask{
		Details:   details,
		DueDate:   dueDate,
		Priority:  priority,
		ClassCode: classCode,
	}
}

// MarkCompleted marks the sub-task as completed. Idempotent.
func (s *SubTask) MarkCompleted() {
	s.Completed = true
}

// SubTaskEdit carries the fields of a sub-task edit. A nil field means
// "leave unchanged"; the interpretation of blank input as no-change
// belongs to the caller, not to the entity.
type SubTaskEdit struct {
	Details  *string
	DueDate  *Date
	Priority *Priority
}
