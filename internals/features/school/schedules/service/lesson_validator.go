// file: internals/features/school/schedules/service/lesson_validator.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	repo "kelasku_backend/internals/features/school/schedules/repository"
)

// ValidateLessonAssignment enforces the lesson-binding invariants. Pure
// validation: the writer performs the actual binding write.
//
//  1. A recurring schedule carries no lesson bindings at all.
//  2. Each proposed lesson must not already be bound by another live
//     (scheduled/active) record of the same class.
//  3. With no lessons, a non-empty title is required so the session stays
//     identifiable.
func ValidateLessonAssignment(
	ctx context.Context,
	store repo.ScheduleStore,
	dir repo.ClassDirectory,
	classID uuid.UUID,
	lessonIDs []uuid.UUID,
	isRecurring bool,
	title *string,
	excludeID uuid.UUID,
) error {
	if isRecurring && len(lessonIDs) > 0 {
		return newScheduleError(ErrCodeRecurringNoLessons, "a recurring series cannot carry lesson bindings")
	}

	if len(lessonIDs) == 0 {
		if title == nil || strings.TrimSpace(*title) == "" {
			return newScheduleError(ErrCodeTitleRequired, "title required when no lesson is selected")
		}
		return nil
	}

	bound, err := store.ListLessonBound(ctx, classID, excludeID)
	if err != nil {
		return err
	}
	taken := make(map[string]bool)
	for i := range bound {
		for _, lid := range bound[i].ClassScheduleLessonIDs {
			taken[lid] = true
		}
	}

	for _, lid := range lessonIDs {
		if !taken[lid.String()] {
			continue
		}
		se := newScheduleError(ErrCodeLessonAlreadyScheduled, "lesson is already scheduled in this class")
		if lesson, er := dir.GetLesson(ctx, lid); er == nil && lesson != nil {
			se.LessonTitle = lesson.Title
		}
		return se
	}
	return nil
}
