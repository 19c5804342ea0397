// Package cli implements the interactive menu surface. It owns every
// prompt and every printed message; the core entities and the store never
// print or re-prompt themselves.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/studytrack/core/internal/application/services"
	"github.com/studytrack/core/internal/domain/credential"
	"github.com/studytrack/core/internal/domain/entities"
	"github.com/studytrack/core/internal/infrastructure/logger"
)

const maxLoginAttempts = 3

const mainMenuHelp = `
Main Menu Help:
1. Task Management: Manage your tasks and sub-tasks.
2. Save and Exit: Save all changes and exit the application.
3. Exit without Saving: Exit the application without saving changes.
4. Help: Display this help message.
`

const taskMenuHelp = `
Task Management Menu Help:
1. Create Main Task: Create a new main task.
2. Add Sub-Task to Main Task: Add a sub-task to an existing main task.
3. Mark Tasks as Completed: Mark main tasks or sub-tasks as completed.
4. View and Search: View all tasks and sub-tasks or search for specific sub-tasks.
5. Edit Tasks: Edit an existing main task or sub-task.
6. Delete Tasks: Delete an existing main task or sub-task.
7. Back to Main Menu: Go back to the main menu.
8. Help: Display this help message.
`

// Menu drives the interactive session against the session service.
type Menu struct {
	prompter *Prompter
	service  *services.SessionService
	out      io.Writer
	logger   *logger.Logger
	password PasswordReader
}

// NewMenu creates a menu bound to a prompter and session service.
func NewMenu(prompter *Prompter, service *services.SessionService, out io.Writer, log *logger.Logger) *Menu {
	return &Menu{
		prompter: prompter,
		service:  service,
		out:      out,
		logger:   log.WithComponent("cli"),
		password: newPasswordReader(prompter),
	}
}

// SetPasswordReader overrides how passwords are read. Intended for tests.
func (m *Menu) SetPasswordReader(reader PasswordReader) {
	m.password = reader
}

// Run authenticates or registers a student, then drives the main menu
// until the student exits.
func (m *Menu) Run() error {
	studentID := m.prompter.Line("Enter your student ID: ")
	if studentID == "" {
		return nil
	}

	var session *services.Session
	if m.service.HasStudent(studentID) {
		session = m.login(studentID)
	} else {
		session = m.register(studentID)
	}
	if session == nil {
		return nil
	}

	m.mainLoop(session)
	return nil
}

func (m *Menu) login(studentID string) *services.Session {
	for attempt := 0; attempt < maxLoginAttempts; attempt++ {
		password, err := m.password("Enter your password: ")
		if err != nil {
			fmt.Fprintln(m.out, "Could not read password.")
			return nil
		}

		session, err := m.service.Login(studentID, password)
		if err == nil {
			return session
		}
		if errors.Is(err, credential.ErrMalformedCredential) {
			fmt.Fprintln(m.out, "The stored account data is corrupted. Please contact support.")
			return nil
		}

		fmt.Fprintln(m.out, "Incorrect password.")
		if attempt < maxLoginAttempts-1 {
			fmt.Fprintf(m.out, "You have %d attempt(s) left.\n", maxLoginAttempts-1-attempt)
		}
	}

	fmt.Fprintln(m.out, "It seems you have entered the wrong password multiple times. Please try again later or contact support.")
	return nil
}

func (m *Menu) register(studentID string) *services.Session {
	if !m.prompter.Confirm("No account found with the provided student ID. Would you like to create a new student?") {
		return nil
	}

	password, err := m.password("Enter a password: ")
	if err != nil {
		fmt.Fprintln(m.out, "Could not read password.")
		return nil
	}

	session, err := m.service.Register(studentID, password)
	if err != nil {
		m.logger.Errorw("registration failed", "student_id", studentID, "error", err)
		fmt.Fprintln(m.out, "Could not create the new student. Please try again.")
		return nil
	}

	fmt.Fprintln(m.out, "New student created successfully.")
	return session
}

func (m *Menu) mainLoop(session *services.Session) {
	for {
		fmt.Fprint(m.out, "\nMain Menu:\n1. Task Management\n2. Save and Exit\n3. Exit without Saving\n4. Help\n")
		switch m.prompter.Line("Choose an option: ") {
		case "1":
			m.taskManagementLoop(session.Student)
		case "2":
			if err := m.service.Save(); err != nil {
				m.logger.Errorw("save failed", "session_id", session.ID, "error", err)
				fmt.Fprintln(m.out, "An error occurred while saving. Your changes are still in memory.")
				continue
			}
			fmt.Fprintln(m.out, "Changes saved successfully.")
			fmt.Fprintln(m.out, "Goodbye! Keep up the good work and stay organised!")
			return
		case "3":
			fmt.Fprintln(m.out, "Exiting without saving.")
			fmt.Fprintln(m.out, "Goodbye! Remember, each day is a new opportunity to do your best!")
			return
		case "4":
			fmt.Fprint(m.out, mainMenuHelp)
		default:
			if m.prompter.EOF() {
				return
			}
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) taskManagementLoop(student *entities.Student) {
	for {
		fmt.Fprint(m.out, "\nTask Management:\n1. Create Main Task\n2. Add Sub-Task to Main Task\n3. Mark Tasks as Completed\n4. View and Search\n5. Edit Tasks\n6. Delete Tasks\n7. Back to Main Menu\n8. Help\n")
		switch m.prompter.Line("Choose an option: ") {
		case "1":
			m.createMainTask(student)
		case "2":
			m.addSubTask(student)
		case "3":
			m.markLoop(student)
		case "4":
			m.viewAndSearchLoop(student)
		case "5":
			m.editLoop(student)
		case "6":
			m.deleteLoop(student)
		case "7":
			return
		case "8":
			fmt.Fprint(m.out, taskMenuHelp)
		default:
			if m.prompter.EOF() {
				return
			}
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) markLoop(student *entities.Student) {
	for {
		fmt.Fprint(m.out, "\nMark as Completed:\n1. Mark Main Task as Completed\n2. Mark Sub-Task as Completed\n3. Back to Task Management Menu\n")
		switch m.prompter.Line("Choose an option: ") {
		case "1":
			m.markMainTaskCompleted(student)
		case "2":
			m.markSubTaskCompleted(student)
		case "3":
			return
		default:
			if m.prompter.EOF() {
				return
			}
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) viewAndSearchLoop(student *entities.Student) {
	for {
		fmt.Fprint(m.out, "\nView and Search:\n1. View All Tasks and Sub-Tasks\n2. View Main Tasks\n3. View Sub-Tasks\n4. Search Sub-Tasks\n5. Back to Task Management Menu\n")
		switch m.prompter.Line("Choose an option: ") {
		case "1":
			renderAllTasks(m.out, student.ViewTaskLists())
		case "2":
			renderTaskLists(m.out, student.ViewTaskLists())
		case "3":
			renderSubTasks(m.out, student.ViewAllSubTasks())
		case "4":
			m.searchSubTasks(student)
		case "5":
			return
		default:
			if m.prompter.EOF() {
				return
			}
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) editLoop(student *entities.Student) {
	for {
		fmt.Fprint(m.out, "\nEdit:\n1. Edit Main Task\n2. Edit Sub-Task\n3. Back to Task Management Menu\n")
		switch m.prompter.Line("Choose an option: ") {
		case "1":
			m.editMainTask(student)
		case "2":
			m.editSubTask(student)
		case "3":
			return
		default:
			if m.prompter.EOF() {
				return
			}
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) deleteLoop(student *entities.Student) {
	for {
		fmt.Fprint(m.out, "\nDelete:\n1. Delete Main Task\n2. Delete Sub-Task\n3. Back to Task Management Menu\n")
		switch m.prompter.Line("Choose an option: ") {
		case "1":
			m.deleteMainTask(student)
		case "2":
			m.deleteSubTask(student)
		case "3":
			return
		default:
			if m.prompter.EOF() {
				return
			}
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) createMainTask(student *entities.Student) {
	name := m.prompter.Line("Enter main task name: ")
	dueDate := m.prompter.Date("Enter main task due date (dd/mm/yyyy)", nil)
	priority := m.prompter.Priority("Enter priority")
	status := m.prompter.Status("Enter status")
	classCode := m.prompter.ClassCode("Enter class code (e.g., ICT120, leave empty to skip): ")

	student.AddTaskList(entities.NewMainTask(name, dueDate, priority, status, classCode))
}

func (m *Menu) addSubTask(student *entities.Student) {
	if len(student.TaskLists) == 0 {
		fmt.Fprintln(m.out, "No main tasks available to add sub-tasks to.")
		return
	}
	renderTaskLists(m.out, student.ViewTaskLists())

	task, ok := m.selectTaskList(student, "Enter main task number to add sub-task to: ")
	if !ok {
		return
	}

	details := m.prompter.Line("Enter sub-task details: ")
	dueDate := m.prompter.Date("Enter sub-task due date (dd/mm/yyyy)", task.DueDate)
	priority := m.prompter.Priority("Enter priority")
	status := m.prompter.Status("Enter status")

	// Sub-tasks inherit the class code of their owning main task.
	classCode := "N/A"
	if task.ClassCode != nil {
		classCode = *task.ClassCode
	}

	sub := entities.NewSubTask(details, dueDate, priority, classCode)
	if status == entities.StatusCompleted {
		sub.MarkCompleted()
	}

	if err := task.AddSubTask(sub); err != nil {
		fmt.Fprintln(m.out, capitalize(err))
	}
}

func (m *Menu) markMainTaskCompleted(student *entities.Student) {
	if len(student.TaskLists) == 0 {
		fmt.Fprintln(m.out, "No main tasks available to mark as completed.")
		return
	}
	renderTaskLists(m.out, student.ViewTaskLists())

	task, ok := m.selectTaskList(student, "Enter main task number to mark as completed: ")
	if !ok {
		return
	}
	task.MarkCompleted()
	fmt.Fprintln(m.out, "Main task marked as completed.")
}

func (m *Menu) markSubTaskCompleted(student *entities.Student) {
	if len(student.TaskLists) == 0 {
		fmt.Fprintln(m.out, "No main tasks available to mark sub-tasks as completed.")
		return
	}
	renderAllTasks(m.out, student.ViewTaskLists())

	task, ok := m.selectTaskList(student, "Enter main task number to mark sub-task as completed: ")
	if !ok {
		return
	}
	position, ok := m.selectSubTask(task, "Enter sub-task number to mark as completed: ")
	if !ok {
		return
	}
	if err := task.MarkSubTaskCompleted(position); err != nil {
		fmt.Fprintln(m.out, "Invalid sub-task number.")
	}
}

func (m *Menu) deleteMainTask(student *entities.Student) {
	if len(student.TaskLists) == 0 {
		fmt.Fprintln(m.out, "No main tasks available to delete.")
		return
	}
	renderTaskLists(m.out, student.ViewTaskLists())

	position := m.prompter.Int("Enter main task number to delete: ")
	if _, err := student.TaskListAt(position); err != nil {
		fmt.Fprintln(m.out, "Invalid main task number.")
		return
	}
	if !m.prompter.Confirm("Are you sure you want to delete this task?") {
		return
	}
	if err := student.DeleteTaskList(position); err != nil {
		fmt.Fprintln(m.out, "Invalid main task number.")
	}
}

func (m *Menu) deleteSubTask(student *entities.Student) {
	if len(student.TaskLists) == 0 {
		fmt.Fprintln(m.out, "No main tasks available to delete sub-tasks from.")
		return
	}
	renderAllTasks(m.out, student.ViewTaskLists())

	task, ok := m.selectTaskList(student, "Enter main task number to delete sub-task from: ")
	if !ok {
		return
	}
	position, ok := m.selectSubTask(task, "Enter sub-task number to delete: ")
	if !ok {
		return
	}
	if !m.prompter.Confirm("Are you sure you want to delete this sub-task?") {
		return
	}
	if err := task.DeleteSubTask(position); err != nil {
		fmt.Fprintln(m.out, "Invalid sub-task number.")
	}
}

func (m *Menu) editMainTask(student *entities.Student) {
	if len(student.TaskLists) == 0 {
		fmt.Fprintln(m.out, "No task lists available to edit.")
		return
	}
	renderTaskLists(m.out, student.ViewTaskLists())

	position := m.prompter.Int("Enter task list number to edit: ")
	if _, err := student.TaskListAt(position); err != nil {
		fmt.Fprintln(m.out, "Invalid task list number.")
		return
	}

	// Blank input means "leave unchanged"; the edit struct makes the
	// presence of each field explicit before the core sees it.
	edit := entities.MainTaskEdit{}
	if name := m.prompter.Line("Enter new task list name (leave empty to skip): "); name != "" {
		edit.Name = &name
	}
	if m.prompter.Confirm("Change due date?") {
		edit.DueDate = m.prompter.Date("Enter new due date (dd/mm/yyyy)", nil)
	}
	if m.prompter.Confirm("Change priority?") {
		priority := m.prompter.Priority("Enter new priority")
		edit.Priority = &priority
	}
	if m.prompter.Confirm("Change status?") {
		status := m.prompter.Status("Enter new status")
		edit.Status = &status
	}
	if m.prompter.Confirm("Change class code?") {
		edit.ClassCode = m.prompter.ClassCode("Enter new class code (e.g., ICT120, leave empty to skip): ")
	}

	if err := student.EditTaskList(position, edit); err != nil {
		fmt.Fprintln(m.out, "Invalid task list number.")
	}
}

func (m *Menu) editSubTask(student *entities.Student) {
	if len(student.TaskLists) == 0 {
		fmt.Fprintln(m.out, "No task lists available to edit sub-tasks in.")
		return
	}
	renderTaskLists(m.out, student.ViewTaskLists())

	task, ok := m.selectTaskList(student, "Enter task list number to edit sub-task in: ")
	if !ok {
		return
	}
	position, ok := m.selectSubTask(task, "Enter sub-task number to edit: ")
	if !ok {
		return
	}

	edit := entities.SubTaskEdit{}
	if details := m.prompter.Line("Enter new sub-task details (leave empty to skip): "); details != "" {
		edit.Details = &details
	}
	if m.prompter.Confirm("Change due date?") {
		edit.DueDate = m.prompter.Date("Enter new due date (dd/mm/yyyy)", task.DueDate)
	}
	if m.prompter.Confirm("Change priority?") {
		priority := m.prompter.Priority("Enter new priority")
		edit.Priority = &priority
	}

	if err := task.EditSubTask(position, edit); err != nil {
		fmt.Fprintln(m.out, capitalize(err))
	}
}

func (m *Menu) searchSubTasks(student *entities.Student) {
	if len(student.TaskLists) == 0 {
		fmt.Fprintln(m.out, "No task lists available to search sub-tasks in.")
		return
	}
	renderTaskLists(m.out, student.ViewTaskLists())

	searchAll := m.prompter.Confirm("Do you want to search across all lists?")
	keyword := m.prompter.Line("Enter keyword to search (leave empty to match all): ")

	var results []*entities.SubTask
	if searchAll {
		for _, task := range student.ViewTaskLists() {
			results = append(results, task.SearchSubTasks(keyword)...)
		}
	} else {
		task, ok := m.selectTaskList(student, "Enter task list number to search in: ")
		if !ok {
			return
		}
		results = task.SearchSubTasks(keyword)
	}

	renderSubTasks(m.out, results)
}

// selectTaskList prompts for a 1-based main task position and resolves it.
func (m *Menu) selectTaskList(student *entities.Student, prompt string) (*entities.MainTask, bool) {
	position := m.prompter.Int(prompt)
	task, err := student.TaskListAt(position)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid main task number.")
		return nil, false
	}
	return task, true
}

// selectSubTask lists a task's sub-tasks and prompts for a position. The
// position is returned rather than the sub-task so mutating operations
// stay on the owning main task.
func (m *Menu) selectSubTask(task *entities.MainTask, prompt string) (int, bool) {
	subs := task.ViewSubTasks()
	if len(subs) == 0 {
		fmt.Fprintln(m.out, "No sub-tasks in this list.")
		return 0, false
	}
	for i, sub := range subs {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, sub.Details)
	}

	position := m.prompter.Int(prompt)
	if position < 1 || position > len(subs) {
		fmt.Fprintln(m.out, "Invalid sub-task number.")
		return 0, false
	}
	return position, true
}

func capitalize(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
