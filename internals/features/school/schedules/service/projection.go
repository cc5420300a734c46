// file: internals/features/school/schedules/service/projection.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/schedules/model"
)

// ScheduleView is a schedule record annotated with the display fields the
// calendar consumes. Projection only, no algorithmic content.
type ScheduleView struct {
	model.ClassScheduleModel
	ClassName       string `json:"class_name"`
	CurriculumTitle string `json:"curriculum_title"`
	IsLive          bool   `json:"is_live"`
}

// ListForActor merges the schedule records of every class relevant to the
// actor (taught classes for teachers, enrolled classes for students) inside
// the optional [from, to) window.
func (w *ScheduleWriter) ListForActor(ctx context.Context, userID uuid.UUID, role string, from, to *time.Time) ([]ScheduleView, error) {
	classes, err := w.Classes.ListClassesForUser(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(classes))
	names := make(map[uuid.UUID]int, len(classes))
	for i, c := range classes {
		ids = append(ids, c.ID)
		names[c.ID] = i
	}

	rows, err := w.Store.ListForClasses(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]ScheduleView, 0, len(rows))
	for i := range rows {
		v := ScheduleView{
			ClassScheduleModel: rows[i],
			IsLive:             rows[i].ClassScheduleStatus == model.ScheduleStatusActive,
		}
		if idx, ok := names[rows[i].ClassScheduleClassID]; ok {
			v.ClassName = classes[idx].Name
			v.CurriculumTitle = classes[idx].CurriculumTitle
		}
		out = append(out, v)
	}
	return out, nil
}
