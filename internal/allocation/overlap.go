package allocation

import (
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

// DateParseError reports a task date that could not be read during
// conflict detection. The pair involving the task is skipped.
type DateParseError struct {
	TaskID string
	Field  string
	Value  string
	Err    error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("task %s: %s %q: %v", e.TaskID, e.Field, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// span is a task's inclusive calendar interval.
type span struct {
	start time.Time
	end   time.Time
}

func (s span) contains(day time.Time) bool {
	return domain.WithinDays(day, s.start, s.end)
}

// taskSpan parses both dates of t, reporting every unreadable field.
func taskSpan(t *domain.Task) (span, []DateParseError) {
	var s span
	var errs []DateParseError
	var err error
	if s.start, err = domain.ParseDate(t.StartDate); err != nil {
		errs = append(errs, DateParseError{TaskID: t.ID, Field: "start_date", Value: t.StartDate, Err: err})
	}
	if s.end, err = domain.ParseDate(t.EndDate); err != nil {
		errs = append(errs, DateParseError{TaskID: t.ID, Field: "end_date", Value: t.EndDate, Err: err})
	}
	return s, errs
}

func spansOverlap(a, b span) bool {
	return b.contains(a.start) || a.contains(b.start)
}

// Overlaps reports whether two tasks' inclusive date ranges intersect.
// Touching ranges overlap. A malformed date on either task yields a
// *DateParseError and no verdict.
func Overlaps(a, b *domain.Task) (bool, error) {
	sa, errs := taskSpan(a)
	if len(errs) > 0 {
		return false, &errs[0]
	}
	sb, errs := taskSpan(b)
	if len(errs) > 0 {
		return false, &errs[0]
	}
	return spansOverlap(sa, sb), nil
}
