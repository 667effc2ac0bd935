package worktime

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Status is the attendance state of a work-time entry.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHoliday Status = "Holiday"
	StatusIll     Status = "Ill"
)

// Statuses lists every accepted status in display order.
var Statuses = []Status{StatusPresent, StatusAbsent, StatusHoliday, StatusIll}

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

const clockLayout = "15:04"

// ParseClock parses "HH:MM" (24h). A trailing ":SS" is accepted and dropped.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return Clock{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
		}
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalText encodes the clock as "HH:MM".
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// WorkTime is one calendar-day attendance record for an employee.
type WorkTime struct {
	ID           int64
	EmployeeID   int64
	EmployeeName string
	Date         time.Time
	StartTime    *Clock
	EndTime      *Clock
	Status       Status
	Comment      string
}

// Input carries the replaceable fields of a work-time entry. Edits overwrite every field.
type Input struct {
	Date      time.Time
	StartTime *Clock
	EndTime   *Clock
	Status    Status
	Comment   string
}

// Apply overwrites wt's editable fields with in.
func (in Input) Apply(wt *WorkTime) {
	wt.Date = in.Date
	wt.StartTime = in.StartTime
	wt.EndTime = in.EndTime
	wt.Status = in.Status
	wt.Comment = in.Comment
}

func clockToPG(c *Clock) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	us := (int64(c.Hour)*3600 + int64(c.Minute)*60) * int64(time.Second/time.Microsecond)
	return pgtype.Time{Microseconds: us, Valid: true}
}

func clockFromPG(t pgtype.Time) *Clock {
	if !t.Valid {
		return nil
	}
	minutes := t.Microseconds / int64(time.Minute/time.Microsecond)
	return &Clock{Hour: int(minutes / 60), Minute: int(minutes % 60)}
}
