// file: internals/features/school/schedules/service/writer.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "kelasku_backend/internals/features/school/schedules/model"
	repo "kelasku_backend/internals/features/school/schedules/repository"
)

// Namespace for deterministic room ids; never change it or existing room
// references break.
var roomNamespace = uuid.MustParse("7b1c9a52-3e4d-4f7a-9c1e-5d2b8a6f0e43")

/* =========================
   Writer & constructor
   ========================= */

// ScheduleWriter orchestrates time-range building, recurrence expansion,
// conflict detection and lesson validation into transactional create, update,
// delete and status operations. Every operation is all-or-nothing: a failed
// validation aborts with zero writes.
type ScheduleWriter struct {
	Store   repo.ScheduleStore
	Classes repo.ClassDirectory

	now func() time.Time
}

func NewScheduleWriter(store repo.ScheduleStore, dir repo.ClassDirectory) *ScheduleWriter {
	return &ScheduleWriter{Store: store, Classes: dir, now: time.Now}
}

/* =========================
   Inputs & results
   ========================= */

type CreateSingleInput struct {
	ClassID     uuid.UUID
	LessonIDs   []uuid.UUID
	Title       *string
	Description *string
	SessionType model.SessionType
	StartAt     time.Time // wall-clock anchor, interpreted with TZOffsetMin
	DurationMin int
	TZOffsetMin int
	CreatedBy   uuid.UUID
}

type CreateRecurringInput struct {
	ClassID     uuid.UUID
	LessonIDs   []uuid.UUID // always rejected when non-empty; present so the attempt fails loudly
	Title       *string
	Description *string
	SessionType model.SessionType
	Type        RecurrenceType
	DaysOfWeek  []time.Weekday
	Occurrences int
	StartAt     time.Time
	DurationMin int
	TZOffsetMin int
	CreatedBy   uuid.UUID
}

type CreateRecurringResult struct {
	Records []*model.ClassScheduleModel
	// AdjustedStart reports that the anchor's weekday was not in the weekday
	// set and the first occurrence moved forward; callers surface it so the
	// pending form can update its start date.
	AdjustedStart  bool
	EffectiveStart time.Time
}

type UpdatePatch struct {
	Title       *string
	Description *string
	LessonIDs   *[]uuid.UUID // nil = unchanged
	SessionType *model.SessionType
	StartAt     *time.Time // wall-clock, interpreted with TZOffsetMin
	DurationMin *int
	TZOffsetMin int
}

/* =========================
   Create
   ========================= */

func (w *ScheduleWriter) CreateSingle(ctx context.Context, in CreateSingleInput) (*model.ClassScheduleModel, error) {
	cls, err := w.resolveClass(ctx, in.ClassID)
	if err != nil {
		return nil, err
	}
	if !in.SessionType.Valid() {
		return nil, newScheduleError(ErrCodeInvalidSessionType, fmt.Sprintf("unknown session type %q", in.SessionType))
	}
	window, err := BuildTimeRange(in.StartAt, in.DurationMin, in.TZOffsetMin)
	if err != nil {
		return nil, err
	}

	var out *model.ClassScheduleModel
	err = w.Store.WithinTx(ctx, func(tx repo.ScheduleStore) error {
		if er := w.checkScopes(ctx, tx, window, cls, uuid.Nil, nil, false); er != nil {
			return er
		}
		if er := ValidateLessonAssignment(ctx, tx, w.Classes, cls.ID, in.LessonIDs, false, in.Title, uuid.Nil); er != nil {
			return er
		}

		rec := w.newRecord(cls, in.SessionType, in.Title, in.Description, window, in.CreatedBy)
		rec.ClassScheduleLessonIDs = lessonArray(in.LessonIDs)
		rec.ClassScheduleRoomName = buildRoomName(cls.ID, firstLesson(in.LessonIDs), window.Start)
		if er := tx.Create(ctx, rec); er != nil {
			return er
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (w *ScheduleWriter) CreateRecurring(ctx context.Context, in CreateRecurringInput) (*CreateRecurringResult, error) {
	cls, err := w.resolveClass(ctx, in.ClassID)
	if err != nil {
		return nil, err
	}
	if !in.SessionType.Valid() {
		return nil, newScheduleError(ErrCodeInvalidSessionType, fmt.Sprintf("unknown session type %q", in.SessionType))
	}
	window, err := BuildTimeRange(in.StartAt, in.DurationMin, in.TZOffsetMin)
	if err != nil {
		return nil, err
	}

	exp, err := ExpandRecurrence(RecurrenceSpec{
		Type:        in.Type,
		DaysOfWeek:  in.DaysOfWeek,
		Occurrences: in.Occurrences,
		AnchorStart: window.Start,
	})
	if err != nil {
		return nil, err
	}

	rule := recurrenceSnapshot(in.Type, in.DaysOfWeek, in.Occurrences)
	parentID := uuid.New()

	var recs []*model.ClassScheduleModel
	err = w.Store.WithinTx(ctx, func(tx repo.ScheduleStore) error {
		// Every candidate must pass before anything is written; the failing
		// occurrence date rides along on the error.
		for _, start := range exp.Starts {
			occ := start
			wnd := window.WithStart(start)
			if er := w.checkScopes(ctx, tx, wnd, cls, uuid.Nil, &occ, true); er != nil {
				return er
			}
		}
		if er := ValidateLessonAssignment(ctx, tx, w.Classes, cls.ID, in.LessonIDs, true, in.Title, uuid.Nil); er != nil {
			return er
		}

		recs = make([]*model.ClassScheduleModel, 0, len(exp.Starts))
		for i, start := range exp.Starts {
			wnd := window.WithStart(start)
			rec := w.newRecord(cls, in.SessionType, in.Title, in.Description, wnd, in.CreatedBy)
			rec.ClassScheduleIsRecurring = true
			rec.ClassScheduleRecurrence = rule
			rec.ClassScheduleRoomName = buildRoomName(cls.ID, nil, wnd.Start)
			if i == 0 {
				rec.ClassScheduleID = parentID
			} else {
				pid := parentID
				rec.ClassScheduleParentID = &pid
			}
			recs = append(recs, rec)
		}
		return tx.CreateBatch(ctx, recs)
	})
	if err != nil {
		return nil, err
	}

	return &CreateRecurringResult{
		Records:        recs,
		AdjustedStart:  exp.AdjustedStart,
		EffectiveStart: exp.Starts[0],
	}, nil
}

/* =========================
   Update
   ========================= */

func (w *ScheduleWriter) Update(ctx context.Context, id uuid.UUID, patch UpdatePatch, updateSeries bool) ([]*model.ClassScheduleModel, error) {
	var updated []*model.ClassScheduleModel
	err := w.Store.WithinTx(ctx, func(tx repo.ScheduleStore) error {
		rec, er := w.getRecord(ctx, tx, id)
		if er != nil {
			return er
		}
		if rec.ClassScheduleStatus.Terminal() {
			return newScheduleError(ErrCodeScheduleImmutable, "cancelled or completed schedules cannot be modified")
		}
		cls, er := w.resolveClass(ctx, rec.ClassScheduleClassID)
		if er != nil {
			return er
		}

		newWindow, er := w.patchedWindow(rec, patch)
		if er != nil {
			return er
		}

		if updateSeries && rec.ClassScheduleIsRecurring {
			out, er := w.updateSeries(ctx, tx, rec, cls, patch, newWindow)
			if er != nil {
				return er
			}
			updated = out
			return nil
		}

		out, er := w.updateInstance(ctx, tx, rec, cls, patch, newWindow)
		if er != nil {
			return er
		}
		updated = []*model.ClassScheduleModel{out}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// updateSeries applies the patch to the target and every non-terminal sibling
// starting at or after the target's original start. A new start shifts each
// affected instance by the same delta so the series keeps its cadence.
func (w *ScheduleWriter) updateSeries(ctx context.Context, tx repo.ScheduleStore, rec *model.ClassScheduleModel, cls *repo.ClassInfo, patch UpdatePatch, newWindow TimeRange) ([]*model.ClassScheduleModel, error) {
	if patch.LessonIDs != nil && len(*patch.LessonIDs) > 0 {
		return nil, newScheduleError(ErrCodeRecurringNoLessons, "a recurring series cannot carry lesson bindings")
	}

	sibs, err := tx.ListSeries(ctx, rec.SeriesRootID())
	if err != nil {
		return nil, err
	}

	delta := newWindow.Start.Sub(rec.ClassScheduleStartAt)
	dur := newWindow.Duration()

	var out []*model.ClassScheduleModel
	for i := range sibs {
		sib := sibs[i]
		if sib.ClassScheduleStatus.Terminal() || sib.ClassScheduleStartAt.Before(rec.ClassScheduleStartAt) {
			continue
		}
		wnd := TimeRange{Start: sib.ClassScheduleStartAt.Add(delta)}
		wnd.End = wnd.Start.Add(dur)

		occ := wnd.Start
		if er := w.checkScopes(ctx, tx, wnd, cls, sib.ClassScheduleID, &occ, false); er != nil {
			return nil, er
		}

		applyDisplayPatch(&sib, patch)
		sib.ClassScheduleStartAt = wnd.Start
		sib.ClassScheduleEndAt = wnd.End
		if er := tx.Save(ctx, &sib); er != nil {
			return nil, er
		}
		s := sib
		out = append(out, &s)
	}
	return out, nil
}

// updateInstance modifies one record only. A series instance edited this way
// is treated as a concrete session: it may take or drop lesson bindings,
// validated against the rest of its class.
func (w *ScheduleWriter) updateInstance(ctx context.Context, tx repo.ScheduleStore, rec *model.ClassScheduleModel, cls *repo.ClassInfo, patch UpdatePatch, newWindow TimeRange) (*model.ClassScheduleModel, error) {
	if er := w.checkScopes(ctx, tx, newWindow, cls, rec.ClassScheduleID, nil, false); er != nil {
		return nil, er
	}

	lessons := uuidsFromArray(rec.ClassScheduleLessonIDs)
	if patch.LessonIDs != nil {
		lessons = *patch.LessonIDs
	}
	title := rec.ClassScheduleTitle
	if patch.Title != nil {
		title = patch.Title
	}
	if er := ValidateLessonAssignment(ctx, tx, w.Classes, cls.ID, lessons, false, title, rec.ClassScheduleID); er != nil {
		return nil, er
	}

	applyDisplayPatch(rec, patch)
	if patch.LessonIDs != nil {
		rec.ClassScheduleLessonIDs = lessonArray(*patch.LessonIDs)
	}
	rec.ClassScheduleStartAt = newWindow.Start
	rec.ClassScheduleEndAt = newWindow.End
	if er := tx.Save(ctx, rec); er != nil {
		return nil, er
	}
	return rec, nil
}

/* =========================
   Delete (cancel)
   ========================= */

// Delete cancels one instance, or with deleteSeries the instance and every
// future sibling (start >= this instance's start). Past occurrences keep
// their history untouched.
func (w *ScheduleWriter) Delete(ctx context.Context, id uuid.UUID, deleteSeries bool) (int, error) {
	cancelled := 0
	err := w.Store.WithinTx(ctx, func(tx repo.ScheduleStore) error {
		rec, er := w.getRecord(ctx, tx, id)
		if er != nil {
			return er
		}

		if !deleteSeries || !rec.ClassScheduleIsRecurring {
			if rec.ClassScheduleStatus == model.ScheduleStatusCancelled {
				return nil // already cancelled, no-op
			}
			if rec.ClassScheduleStatus == model.ScheduleStatusCompleted {
				return newScheduleError(ErrCodeScheduleImmutable, "a completed schedule cannot be cancelled")
			}
			rec.ClassScheduleStatus = model.ScheduleStatusCancelled
			if er := tx.Save(ctx, rec); er != nil {
				return er
			}
			cancelled = 1
			return nil
		}

		sibs, er := tx.ListSeries(ctx, rec.SeriesRootID())
		if er != nil {
			return er
		}
		for i := range sibs {
			sib := sibs[i]
			if sib.ClassScheduleStartAt.Before(rec.ClassScheduleStartAt) || sib.ClassScheduleStatus.Terminal() {
				continue
			}
			sib.ClassScheduleStatus = model.ScheduleStatusCancelled
			if er := tx.Save(ctx, &sib); er != nil {
				return er
			}
			cancelled++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cancelled, nil
}

/* =========================
   Status transitions
   ========================= */

// MarkLive flips scheduled<->active off the room service's join/leave
// callbacks. Idempotent; late callbacks against terminal records are ignored.
func (w *ScheduleWriter) MarkLive(ctx context.Context, roomName string, isLive bool) (*model.ClassScheduleModel, error) {
	var out *model.ClassScheduleModel
	err := w.Store.WithinTx(ctx, func(tx repo.ScheduleStore) error {
		rec, er := tx.GetByRoomName(ctx, roomName)
		if er != nil {
			if errors.Is(er, gorm.ErrRecordNotFound) {
				return newScheduleError(ErrCodeScheduleNotFound, fmt.Sprintf("no schedule for room %q", roomName))
			}
			return er
		}

		switch {
		case isLive && rec.ClassScheduleStatus == model.ScheduleStatusScheduled:
			rec.ClassScheduleStatus = model.ScheduleStatusActive
		case !isLive && rec.ClassScheduleStatus == model.ScheduleStatusActive:
			rec.ClassScheduleStatus = model.ScheduleStatusScheduled
		default:
			out = rec
			return nil
		}
		if er := tx.Save(ctx, rec); er != nil {
			return er
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Complete closes a session for good. Completing twice is a no-op; a
// cancelled record stays cancelled.
func (w *ScheduleWriter) Complete(ctx context.Context, id uuid.UUID) (*model.ClassScheduleModel, error) {
	var out *model.ClassScheduleModel
	err := w.Store.WithinTx(ctx, func(tx repo.ScheduleStore) error {
		rec, er := w.getRecord(ctx, tx, id)
		if er != nil {
			return er
		}
		switch rec.ClassScheduleStatus {
		case model.ScheduleStatusCompleted:
			out = rec
			return nil
		case model.ScheduleStatusCancelled:
			return newScheduleError(ErrCodeScheduleImmutable, "a cancelled schedule cannot be completed")
		}
		rec.ClassScheduleStatus = model.ScheduleStatusCompleted
		now := w.now().UTC()
		rec.ClassScheduleCompletedAt = &now
		if er := tx.Save(ctx, rec); er != nil {
			return er
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByRoom resolves the record behind an opaque room id; the room service
// uses it before starting a live session.
func (w *ScheduleWriter) GetByRoom(ctx context.Context, roomName string) (*model.ClassScheduleModel, error) {
	rec, err := w.Store.GetByRoomName(ctx, roomName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newScheduleError(ErrCodeScheduleNotFound, fmt.Sprintf("no schedule for room %q", roomName))
		}
		return nil, err
	}
	return rec, nil
}

/* =========================
   Internals
   ========================= */

func (w *ScheduleWriter) resolveClass(ctx context.Context, id uuid.UUID) (*repo.ClassInfo, error) {
	cls, err := w.Classes.GetClass(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newScheduleError(ErrCodeClassNotFound, fmt.Sprintf("class %s not found", id))
		}
		return nil, err
	}
	if cls == nil {
		return nil, newScheduleError(ErrCodeClassNotFound, fmt.Sprintf("class %s not found", id))
	}
	return cls, nil
}

func (w *ScheduleWriter) getRecord(ctx context.Context, tx repo.ScheduleStore, id uuid.UUID) (*model.ClassScheduleModel, error) {
	rec, err := tx.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newScheduleError(ErrCodeScheduleNotFound, fmt.Sprintf("schedule %s not found", id))
		}
		return nil, err
	}
	return rec, nil
}

// checkScopes runs the window through the teacher scope, the class scope and
// (for series creation) the narrower curriculum-in-class scope. occurrence
// tags the failing candidate date on batch validation.
func (w *ScheduleWriter) checkScopes(ctx context.Context, tx repo.ScheduleStore, window TimeRange, cls *repo.ClassInfo, excludeID uuid.UUID, occurrence *time.Time, withCurriculum bool) error {
	scopes := []struct {
		scope repo.ConflictScope
		code  string
	}{
		{repo.TeacherScope(cls.TeacherID), ErrCodeTeacherConflict},
		{repo.ClassScope(cls.ID), ErrCodeClassConflict},
	}
	if withCurriculum {
		scopes = append(scopes, struct {
			scope repo.ConflictScope
			code  string
		}{repo.CurriculumInClassScope(cls.CurriculumID, cls.ID), ErrCodeCurriculumConflict})
	}

	for _, s := range scopes {
		hit, err := FindConflict(ctx, tx, window, s.scope, excludeID)
		if err != nil {
			return err
		}
		if hit == nil {
			continue
		}
		se := conflictError(s.code, w.classNameOf(ctx, hit.ClassScheduleClassID), hit.ClassScheduleStartAt)
		se.OccurrenceDate = occurrence
		return se
	}
	return nil
}

func (w *ScheduleWriter) classNameOf(ctx context.Context, classID uuid.UUID) string {
	if cls, err := w.Classes.GetClass(ctx, classID); err == nil && cls != nil {
		return cls.Name
	}
	return ""
}

func (w *ScheduleWriter) newRecord(cls *repo.ClassInfo, st model.SessionType, title, desc *string, window TimeRange, createdBy uuid.UUID) *model.ClassScheduleModel {
	return &model.ClassScheduleModel{
		ClassScheduleID:           uuid.New(),
		ClassScheduleClassID:      cls.ID,
		ClassScheduleTeacherID:    cls.TeacherID,
		ClassScheduleCurriculumID: cls.CurriculumID,
		ClassScheduleTitle:        title,
		ClassScheduleDescription:  desc,
		ClassScheduleSessionType:  st,
		ClassScheduleStartAt:      window.Start,
		ClassScheduleEndAt:        window.End,
		ClassScheduleStatus:       model.ScheduleStatusScheduled,
		ClassScheduleCreatedBy:    createdBy,
	}
}

func (w *ScheduleWriter) patchedWindow(rec *model.ClassScheduleModel, patch UpdatePatch) (TimeRange, error) {
	current := TimeRange{Start: rec.ClassScheduleStartAt, End: rec.ClassScheduleEndAt}
	if patch.StartAt == nil && patch.DurationMin == nil {
		return current, nil
	}

	durationMin := int(current.Duration() / time.Minute)
	if patch.DurationMin != nil {
		durationMin = *patch.DurationMin
	}
	if patch.StartAt != nil {
		return BuildTimeRange(*patch.StartAt, durationMin, patch.TZOffsetMin)
	}
	if durationMin <= 0 {
		return TimeRange{}, newScheduleError(ErrCodeInvalidDuration, "duration must be positive minutes")
	}
	return TimeRange{Start: current.Start, End: current.Start.Add(time.Duration(durationMin) * time.Minute)}, nil
}

func applyDisplayPatch(rec *model.ClassScheduleModel, patch UpdatePatch) {
	if patch.Title != nil {
		rec.ClassScheduleTitle = patch.Title
	}
	if patch.Description != nil {
		rec.ClassScheduleDescription = patch.Description
	}
	if patch.SessionType != nil && patch.SessionType.Valid() {
		rec.ClassScheduleSessionType = *patch.SessionType
	}
}

func buildRoomName(classID uuid.UUID, lessonID *uuid.UUID, start time.Time) string {
	seed := fmt.Sprintf("%s:%d", classID, start.UnixMilli())
	if lessonID != nil {
		seed = fmt.Sprintf("%s:%s:%d", classID, lessonID, start.UnixMilli())
	}
	return "room-" + uuid.NewSHA1(roomNamespace, []byte(seed)).String()
}

func firstLesson(ids []uuid.UUID) *uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	return &ids[0]
}

func lessonArray(ids []uuid.UUID) pq.StringArray {
	if len(ids) == 0 {
		return nil
	}
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func uuidsFromArray(arr pq.StringArray) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(arr))
	for _, s := range arr {
		if u, err := uuid.Parse(s); err == nil {
			out = append(out, u)
		}
	}
	return out
}

func recurrenceSnapshot(typ RecurrenceType, days []time.Weekday, occurrences int) datatypes.JSONMap {
	out := datatypes.JSONMap{
		"type":        string(typ),
		"occurrences": occurrences,
	}
	if len(days) > 0 {
		arr := make([]int, 0, len(days))
		for _, d := range days {
			arr = append(arr, int(d))
		}
		out["days_of_week"] = arr
	}
	return out
}
