package cli

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/studytrack/core/internal/domain/entities"
)

var classCodePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

// Prompter reads and validates free-text user input. Every helper loops
// until it gets a valid value or the input runs out; the core entities
// never see unvalidated text.
type Prompter struct {
	scanner  *bufio.Scanner
	out      io.Writer
	validate *validator.Validate
	eof      bool
}

// NewPrompter creates a prompter reading from in and echoing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	v := validator.New()
	_ = v.RegisterValidation("classcode", func(fl validator.FieldLevel) bool {
		return classCodePattern.MatchString(fl.Field().String())
	})

	return &Prompter{
		scanner:  bufio.NewScanner(in),
		out:      out,
		validate: v,
	}
}

// EOF reports whether the input source is exhausted.
func (p *Prompter) EOF() bool {
	return p.eof
}

// Line prompts and returns one trimmed line. Returns "" once input is
// exhausted.
func (p *Prompter) Line(prompt string) string {
	if p.eof {
		return ""
	}
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(p.scanner.Text())
}

// Int prompts until it gets a valid integer.
func (p *Prompter) Int(prompt string) int {
	for {
		value, err := strconv.Atoi(p.Line(prompt))
		if err == nil {
			return value
		}
		if p.eof {
			return 0
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter a valid number.")
	}
}

// Priority prompts until it gets one of H/M/L.
func (p *Prompter) Priority(prompt string) entities.Priority {
	for {
		switch strings.ToUpper(p.Line(prompt + " (H: High, M: Medium, L: Low): ")) {
		case "H":
			return entities.PriorityHigh
		case "M":
			return entities.PriorityMedium
		case "L":
			return entities.PriorityLow
		}
		if p.eof {
			return ""
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter a valid priority (H/M/L).")
	}
}

// Status prompts until it gets one of N/P/C.
func (p *Prompter) Status(prompt string) entities.Status {
	for {
		switch strings.ToUpper(p.Line(prompt + " (N: Not Started, P: In Progress, C: Completed): ")) {
		case "N":
			return entities.StatusNotStarted
		case "P":
			return entities.StatusInProgress
		case "C":
			return entities.StatusCompleted
		}
		if p.eof {
			return ""
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter a valid status (N/P/C).")
	}
}

// Date prompts for an optional dd/mm/yyyy date; blank input means no
// date. When max is nil the date must not be in the past; when max is
// set (a sub-task prompt) the date must not be after it.
func (p *Prompter) Date(prompt string, max *entities.Date) *entities.Date {
	for {
		value := p.Line(prompt + " (leave empty to skip): ")
		if value == "" {
			return nil
		}

		due, err := entities.ParseDate(value)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid date format. Please enter the date in dd/mm/yyyy format.")
			continue
		}
		if max == nil && due.Before(entities.Today()) {
			fmt.Fprintln(p.out, "Entered date is in the past. Please enter a future date.")
			continue
		}
		if max != nil && due.After(*max) {
			fmt.Fprintln(p.out, "Sub-task due date cannot be after the main task due date.")
			continue
		}
		return due
	}
}

// ClassCode prompts for an optional class code such as ICT120; blank
// input means no class code. Input is upper-cased before validation.
func (p *Prompter) ClassCode(prompt string) *string {
	for {
		value := strings.ToUpper(p.Line(prompt))
		if value == "" {
			return nil
		}
		if err := p.validate.Var(value, "classcode"); err == nil {
			return &value
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter a valid class code (e.g., ICT120) or leave it blank.")
	}
}

// Confirm prompts until it gets yes or no.
func (p *Prompter) Confirm(prompt string) bool {
	for {
		switch strings.ToLower(p.Line(prompt + " (yes/no): ")) {
		case "yes":
			return true
		case "no":
			return false
		}
		if p.eof {
			return false
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter 'yes' or 'no'.")
	}
}
