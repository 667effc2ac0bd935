package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/worktrack/worktrack/internal/worktime"
)

// MsgTimesRequired is reported on both time fields when a Present entry lacks one of them.
const MsgTimesRequired = "Start and end time required"

const maxCommentLength = 200

// WorkTimeForm mirrors the fields submitted to the add and edit work-time routes.
// Both routes share the field set; only the handler differs.
type WorkTimeForm struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	Comment   string `json:"comment"`
}

// ValidateWorkTimeForm validates a work-time submission and, when valid, returns the parsed input.
func ValidateWorkTimeForm(f WorkTimeForm) (worktime.Input, []FieldError) {
	var errs []FieldError
	var in worktime.Input

	date := strings.TrimSpace(f.Date)
	if date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "date is required"})
	} else if d, err := time.Parse(time.DateOnly, date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "date must be formatted as YYYY-MM-DD"})
	} else {
		in.Date = d
	}

	start, startErr := parseOptionalClock(f.StartTime)
	if startErr != nil {
		errs = append(errs, FieldError{Field: "start_time", Message: "start_time must be formatted as HH:MM"})
	}
	end, endErr := parseOptionalClock(f.EndTime)
	if endErr != nil {
		errs = append(errs, FieldError{Field: "end_time", Message: "end_time must be formatted as HH:MM"})
	}
	in.StartTime, in.EndTime = start, end

	status := worktime.Status(strings.TrimSpace(f.Status))
	switch {
	case status == "":
		errs = append(errs, FieldError{Field: "status", Message: "status is required"})
	case !status.Valid():
		errs = append(errs, FieldError{Field: "status", Message: "status must be one of Present, Absent, Holiday, Ill"})
	default:
		in.Status = status
	}

	if status == worktime.StatusPresent && startErr == nil && endErr == nil && (start == nil || end == nil) {
		errs = append(errs,
			FieldError{Field: "start_time", Message: MsgTimesRequired},
			FieldError{Field: "end_time", Message: MsgTimesRequired},
		)
	}

	if utf8.RuneCountInString(f.Comment) > maxCommentLength {
		errs = append(errs, FieldError{Field: "comment", Message: "comment must be at most 200 characters"})
	}
	in.Comment = f.Comment

	if len(errs) > 0 {
		return worktime.Input{}, errs
	}
	return in, nil
}

func parseOptionalClock(s string) (*worktime.Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	c, err := worktime.ParseClock(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FormFromWorkTime prefills a WorkTimeForm from a stored entry.
func FormFromWorkTime(wt *worktime.WorkTime) WorkTimeForm {
	f := WorkTimeForm{
		Date:    wt.Date.Format(time.DateOnly),
		Status:  string(wt.Status),
		Comment: wt.Comment,
	}
	if wt.StartTime != nil {
		f.StartTime = wt.StartTime.String()
	}
	if wt.EndTime != nil {
		f.EndTime = wt.EndTime.String()
	}
	return f
}
