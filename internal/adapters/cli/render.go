package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/studytrack/core/internal/domain/entities"
)

// renderTaskLists prints the main tasks as a numbered table.
func renderTaskLists(w io.Writer, lists []*entities.MainTask) {
	if len(lists) == 0 {
		fmt.Fprintln(w, "No main tasks found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTask Name\tDue Date\tPriority\tClass Code\tStatus")
	for i, task := range lists {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, task.Name, formatDate(task.DueDate), task.Priority,
			formatClassCode(task.ClassCode), task.Status)
	}
	tw.Flush()
}

// renderSubTasks prints sub-tasks as a numbered table.
func renderSubTasks(w io.Writer, subs []*entities.SubTask) {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No sub-tasks found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSub Task Details\tDue Date\tPriority\tClass Code\tStatus")
	for i, sub := range subs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, sub.Details, formatDate(sub.DueDate), sub.Priority,
			formatOptional(sub.ClassCode), subTaskStatus(sub))
	}
	tw.Flush()
}

// renderAllTasks prints every main task followed by its own sub-tasks.
func renderAllTasks(w io.Writer, lists []*entities.MainTask) {
	if len(lists) == 0 {
		fmt.Fprintln(w, "No main tasks found.")
		return
	}

	for i, task := range lists {
		fmt.Fprintf(w, "Task %d.\n", i+1)
		renderTaskLists(w, []*entities.MainTask{task})
		if len(task.SubTasks) > 0 {
			renderSubTasks(w, task.SubTasks)
		}
		fmt.Fprintln(w)
	}
}

func formatDate(d *entities.Date) string {
	if d == nil {
		return "N/A"
	}
	return d.String()
}

func formatClassCode(code *string) string {
	if code == nil {
		return "N/A"
	}
	return formatOptional(*code)
}

func formatOptional(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

func subTaskStatus(sub *entities.SubTask) string {
	if sub.Completed {
		return "Completed"
	}
	return "Not Completed"
}
