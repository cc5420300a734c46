// file: internals/features/school/schedules/service/errors.go
package service

import (
	"errors"
	"fmt"
	"time"
)

/* =========================
   Business error codes
   ========================= */

const (
	ErrCodeInvalidDuration        = "INVALID_DURATION"
	ErrCodeInvalidRecurrence      = "INVALID_RECURRENCE"
	ErrCodeInvalidSessionType     = "INVALID_SESSION_TYPE"
	ErrCodeTeacherConflict        = "TEACHER_SCHEDULE_CONFLICT"
	ErrCodeClassConflict          = "CLASS_SCHEDULE_CONFLICT"
	ErrCodeCurriculumConflict     = "CURRICULUM_CONFLICT"
	ErrCodeLessonAlreadyScheduled = "LESSON_ALREADY_SCHEDULED"
	ErrCodeRecurringNoLessons     = "RECURRING_NO_LESSONS"
	ErrCodeTitleRequired          = "TITLE_REQUIRED"
	ErrCodeClassNotFound          = "CLASS_NOT_FOUND"
	ErrCodeScheduleNotFound       = "SCHEDULE_NOT_FOUND"
	ErrCodeScheduleImmutable      = "SCHEDULE_IMMUTABLE"
	ErrCodePermissionDenied       = "PERMISSION_DENIED"
)

// ScheduleError is the structured business error every engine operation
// returns on validation failure. It is data, not an opaque string: the UI
// layer localizes from Code and the optional context fields.
type ScheduleError struct {
	Code           string     `json:"code"`
	Message        string     `json:"message"`
	ClassName      string     `json:"class_name,omitempty"`
	ConflictTime   *time.Time `json:"conflict_time,omitempty"`
	LessonTitle    string     `json:"lesson_title,omitempty"`
	OccurrenceDate *time.Time `json:"occurrence_date,omitempty"`
}

func (e *ScheduleError) Error() string {
	if e.ClassName != "" && e.ConflictTime != nil {
		return fmt.Sprintf("%s: %s (class %q at %s)", e.Code, e.Message, e.ClassName, e.ConflictTime.Format(time.RFC3339))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newScheduleError(code, message string) *ScheduleError {
	return &ScheduleError{Code: code, Message: message}
}

func conflictError(code, className string, conflictAt time.Time) *ScheduleError {
	t := conflictAt
	return &ScheduleError{
		Code:         code,
		Message:      "schedule overlaps an existing session",
		ClassName:    className,
		ConflictTime: &t,
	}
}

// AsScheduleError unwraps err into a *ScheduleError if it carries one.
func AsScheduleError(err error) (*ScheduleError, bool) {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
