// file: internals/features/school/schedules/service/conflict.go
package service

import (
	"context"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/schedules/model"
	repo "kelasku_backend/internals/features/school/schedules/repository"
)

// FindConflict returns the earliest existing non-terminal record in scope
// whose window overlaps the proposed one, or nil. excludeID skips the record
// being updated so it never conflicts with itself.
//
// The store already filters on the half-open overlap predicate; the earliest
// match is re-derived here so a mock store without ordering still behaves.
func FindConflict(ctx context.Context, store repo.ScheduleStore, window TimeRange, scope repo.ConflictScope, excludeID uuid.UUID) (*model.ClassScheduleModel, error) {
	rows, err := store.ListOverlapping(ctx, scope, window.Start, window.End, excludeID)
	if err != nil {
		return nil, err
	}

	var first *model.ClassScheduleModel
	for i := range rows {
		r := &rows[i]
		existing := TimeRange{Start: r.ClassScheduleStartAt, End: r.ClassScheduleEndAt}
		if !window.Overlaps(existing) {
			continue
		}
		if first == nil || r.ClassScheduleStartAt.Before(first.ClassScheduleStartAt) {
			first = r
		}
	}
	return first, nil
}
