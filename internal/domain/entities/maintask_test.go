package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) *Date {
	t.Helper()
	date, err := ParseDate(value)
	require.NoError(t, err)
	return date
}

func strPtr(value string) *string { return &value }

func TestAddSubTaskContainment(t *testing.T) {
	task := NewMainTask("Essay", mustDate(t, "01/06/2025"), PriorityHigh, StatusNotStarted, strPtr("ICT120"))

	// On or before the main task due date: accepted.
	require.NoError(t, task.AddSubTask(NewSubTask("Draft intro", mustDate(t, "15/05/2025"), PriorityMedium, "ICT120")))
	require.NoError(t, task.AddSubTask(NewSubTask("Submit", mustDate(t, "01/06/2025"), PriorityHigh, "ICT120")))

	// Strictly after: rejected without mutating.
	err := task.AddSubTask(NewSubTask("Too late", mustDate(t, "10/06/2025"), PriorityLow, "ICT120"))
	assert.ErrorIs(t, err, ErrSubTaskDueAfterMain)
	assert.Len(t, task.SubTasks, 2)
}

func TestAddSubTaskAbsentDates(t *testing.T) {
	noDue := NewMainTask("Open ended", nil, PriorityLow, StatusNotStarted, nil)
	assert.NoError(t, noDue.AddSubTask(NewSubTask("anything", mustDate(t, "31/12/2099"), PriorityLow, "")))

	withDue := NewMainTask("Bounded", mustDate(t, "01/01/2025"), PriorityLow, StatusNotStarted, nil)
	assert.NoError(t, withDue.AddSubTask(NewSubTask("dateless", nil, PriorityLow, "")))
}

func TestDeleteSubTaskPreservesOrder(t *testing.T) {
	task := NewMainTask("List", nil, PriorityMedium, StatusInProgress, nil)
	for _, details := range []string{"first", "second", "third"} {
		require.NoError(t, task.AddSubTask(NewSubTask(details, nil, PriorityLow, "")))
	}

	require.NoError(t, task.DeleteSubTask(2))

	require.Len(t, task.SubTasks, 2)
	assert.Equal(t, "first", task.SubTasks[0].Details)
	assert.Equal(t, "third", task.SubTasks[1].Details)
}

func TestSubTaskPositionBounds(t *testing.T) {
	task := NewMainTask("List", nil, PriorityMedium, StatusNotStarted, nil)
	require.NoError(t, task.AddSubTask(NewSubTask("only", nil, PriorityLow, "")))

	for _, position := range []int{0, -1, 2} {
		assert.ErrorIs(t, task.DeleteSubTask(position), ErrIndexOutOfRange)
		assert.ErrorIs(t, task.MarkSubTaskCompleted(position), ErrIndexOutOfRange)
		assert.ErrorIs(t, task.EditSubTask(position, SubTaskEdit{}), ErrIndexOutOfRange)
	}
	assert.Len(t, task.SubTasks, 1)
}

func TestMarkSubTaskCompleted(t *testing.T) {
	task := NewMainTask("List", nil, PriorityMedium, StatusNotStarted, nil)
	require.NoError(t, task.AddSubTask(NewSubTask("work", nil, PriorityLow, "")))

	require.NoError(t, task.MarkSubTaskCompleted(1))
	assert.True(t, task.SubTasks[0].Completed)

	// Idempotent.
	require.NoError(t, task.MarkSubTaskCompleted(1))
	assert.True(t, task.SubTasks[0].Completed)
}

func TestEditSubTask(t *testing.T) {
	task := NewMainTask("Essay", mustDate(t, "01/06/2025"), PriorityHigh, StatusNotStarted, nil)
	require.NoError(t, task.AddSubTask(NewSubTask("draft", mustDate(t, "15/05/2025"), PriorityMedium, "ICT120")))

	priority := PriorityHigh
	err := task.EditSubTask(1, SubTaskEdit{
		Details:  strPtr("final draft"),
		DueDate:  mustDate(t, "20/05/2025"),
		Priority: &priority,
	})
	require.NoError(t, err)

	sub := task.SubTasks[0]
	assert.Equal(t, "final draft", sub.Details)
	assert.Equal(t, "20/05/2025", sub.DueDate.String())
	assert.Equal(t, PriorityHigh, sub.Priority)
}

func TestEditSubTaskIsAtomic(t *testing.T) {
	task := NewMainTask("Essay", mustDate(t, "01/06/2025"), PriorityHigh, StatusNotStarted, nil)
	require.NoError(t, task.AddSubTask(NewSubTask("draft", mustDate(t, "15/05/2025"), PriorityMedium, "ICT120")))

	priority := PriorityLow
	err := task.EditSubTask(1, SubTaskEdit{
		Details:  strPtr("should not stick"),
		DueDate:  mustDate(t, "10/06/2025"), // after the main task due date
		Priority: &priority,
	})
	assert.ErrorIs(t, err, ErrSubTaskDueAfterMain)

	// None of the provided fields were applied.
	sub := task.SubTasks[0]
	assert.Equal(t, "draft", sub.Details)
	assert.Equal(t, "15/05/2025", sub.DueDate.String())
	assert.Equal(t, PriorityMedium, sub.Priority)
}

func TestEditSubTaskPartialFields(t *testing.T) {
	task := NewMainTask("Essay", mustDate(t, "01/06/2025"), PriorityHigh, StatusNotStarted, nil)
	require.NoError(t, task.AddSubTask(NewSubTask("draft", mustDate(t, "15/05/2025"), PriorityMedium, "ICT120")))

	require.NoError(t, task.EditSubTask(1, SubTaskEdit{Details: strPtr("renamed")}))

	sub := task.SubTasks[0]
	assert.Equal(t, "renamed", sub.Details)
	assert.Equal(t, "15/05/2025", sub.DueDate.String())
	assert.Equal(t, PriorityMedium, sub.Priority)
}

func TestMarkCompletedIgnoresSubTaskState(t *testing.T) {
	task := NewMainTask("Essay", nil, PriorityHigh, StatusInProgress, nil)
	require.NoError(t, task.AddSubTask(NewSubTask("unfinished", nil, PriorityLow, "")))

	task.MarkCompleted()
	assert.Equal(t, StatusCompleted, task.Status)
	assert.False(t, task.SubTasks[0].Completed)
}

func TestSearchSubTasks(t *testing.T) {
	task := NewMainTask("Essay", nil, PriorityHigh, StatusNotStarted, nil)
	for _, details := range []string{"Draft intro", "Review DRAFT", "Bibliography"} {
		require.NoError(t, task.AddSubTask(NewSubTask(details, nil, PriorityLow, "")))
	}

	results := task.SearchSubTasks("draft")
	require.Len(t, results, 2)
	assert.Equal(t, "Draft intro", results[0].Details)
	assert.Equal(t, "Review DRAFT", results[1].Details)

	assert.Len(t, task.SearchSubTasks(""), 3)
	assert.Empty(t, task.SearchSubTasks("missing"))

	// Snapshot, not a live view.
	results = task.SearchSubTasks("")
	results[0] = nil
	assert.NotNil(t, task.SubTasks[0])
}

func TestMainTaskJSONFieldNames(t *testing.T) {
	task := NewMainTask("Essay", mustDate(t, "01/06/2025"), PriorityHigh, StatusNotStarted, strPtr("ICT120"))
	require.NoError(t, task.AddSubTask(NewSubTask("draft", nil, PriorityLow, "ICT120")))

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, field := range []string{"name", "due_date", "priority", "status", "class_code", "sub_tasks"} {
		assert.Contains(t, raw, field)
	}
}

func TestMainTaskUnmarshalDropsNullSubTasks(t *testing.T) {
	payload := `{"name":"damaged","due_date":null,"priority":"Low","status":"Not Started","class_code":null,` +
		`"sub_tasks":[null,{"details":"kept","due_date":null,"priority":"Low","class_code":"","completed":false},null]}`

	var task MainTask
	require.NoError(t, json.Unmarshal([]byte(payload), &task))

	require.Len(t, task.SubTasks, 1)
	assert.Equal(t, "kept", task.SubTasks[0].Details)

	// The sequence stays safe to operate on after a damaged load.
	assert.Len(t, task.SearchSubTasks(""), 1)
	require.NoError(t, task.MarkSubTaskCompleted(1))
}

func TestMainTaskUnmarshalMissingSubTasks(t *testing.T) {
	var task MainTask
	require.NoError(t, json.Unmarshal([]byte(`{"name":"bare","due_date":null,"priority":"Low","status":"Not Started","class_code":null}`), &task))

	assert.NotNil(t, task.SubTasks)
	assert.Empty(t, task.SubTasks)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.ClassCode)
}
