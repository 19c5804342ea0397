package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire and display format for all dates in the system.
const DateLayout = "02/01/2006"

// ErrInvalidDate indicates a date string that does not parse as dd/mm/yyyy.
var ErrInvalidDate = errors.New("invalid date, expected dd/mm/yyyy")

// Date is a calendar day without a time component or timezone. Optional
// dates are represented as *Date; a nil pointer serializes as JSON null.
type Date struct {
	t time.Time
}

// ParseDate parses dd/mm/yyyy text into a Date.
func ParseDate(value string) (*Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return &Date{t: t}, nil
}

// Today returns the current calendar day.
func Today() Date {
	now := time.Now()
	return Date{t: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts only the dd/mm/yyyy string form. JSON null never
// reaches this method: optional dates are pointer fields, and the decoder
// leaves the pointer nil for null.
func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}
