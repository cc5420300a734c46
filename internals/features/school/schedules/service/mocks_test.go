// file: internals/features/school/schedules/service/mocks_test.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "kelasku_backend/internals/features/school/schedules/model"
	repo "kelasku_backend/internals/features/school/schedules/repository"
)

/* =========================
   In-memory ScheduleStore
   ========================= */

type memStore struct {
	rows map[uuid.UUID]*model.ClassScheduleModel
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uuid.UUID]*model.ClassScheduleModel)}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx repo.ScheduleStore) error) error {
	return fn(s)
}

func (s *memStore) Create(ctx context.Context, rec *model.ClassScheduleModel) error {
	cp := *rec
	s.rows[rec.ClassScheduleID] = &cp
	return nil
}

func (s *memStore) CreateBatch(ctx context.Context, recs []*model.ClassScheduleModel) error {
	for _, rec := range recs {
		if err := s.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *memStore) Save(ctx context.Context, rec *model.ClassScheduleModel) error {
	if _, ok := s.rows[rec.ClassScheduleID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *rec
	s.rows[rec.ClassScheduleID] = &cp
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassScheduleModel, error) {
	rec, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *memStore) GetByRoomName(ctx context.Context, roomName string) (*model.ClassScheduleModel, error) {
	for _, rec := range s.rows {
		if rec.ClassScheduleRoomName == roomName {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) ListOverlapping(ctx context.Context, scope repo.ConflictScope, start, end time.Time, excludeID uuid.UUID) ([]model.ClassScheduleModel, error) {
	var out []model.ClassScheduleModel
	for _, rec := range s.rows {
		if rec.ClassScheduleID == excludeID || rec.ClassScheduleStatus.Terminal() {
			continue
		}
		if !inScope(rec, scope) {
			continue
		}
		if rec.ClassScheduleStartAt.Before(end) && start.Before(rec.ClassScheduleEndAt) {
			out = append(out, *rec)
		}
	}
	sortByStart(out)
	return out, nil
}

func inScope(rec *model.ClassScheduleModel, scope repo.ConflictScope) bool {
	switch scope.Kind {
	case repo.ScopeTeacher:
		return rec.ClassScheduleTeacherID == scope.TeacherID
	case repo.ScopeClass:
		return rec.ClassScheduleClassID == scope.ClassID
	case repo.ScopeCurriculumInClass:
		return rec.ClassScheduleCurriculumID == scope.CurriculumID && rec.ClassScheduleClassID == scope.ClassID
	default:
		return false
	}
}

func (s *memStore) ListLessonBound(ctx context.Context, classID uuid.UUID, excludeID uuid.UUID) ([]model.ClassScheduleModel, error) {
	var out []model.ClassScheduleModel
	for _, rec := range s.rows {
		if rec.ClassScheduleID == excludeID || rec.ClassScheduleStatus.Terminal() {
			continue
		}
		if rec.ClassScheduleClassID == classID && len(rec.ClassScheduleLessonIDs) > 0 {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (s *memStore) ListSeries(ctx context.Context, rootID uuid.UUID) ([]model.ClassScheduleModel, error) {
	var out []model.ClassScheduleModel
	for _, rec := range s.rows {
		if rec.ClassScheduleID == rootID || (rec.ClassScheduleParentID != nil && *rec.ClassScheduleParentID == rootID) {
			out = append(out, *rec)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *memStore) ListForClasses(ctx context.Context, classIDs []uuid.UUID, from, to *time.Time) ([]model.ClassScheduleModel, error) {
	want := make(map[uuid.UUID]bool, len(classIDs))
	for _, id := range classIDs {
		want[id] = true
	}
	var out []model.ClassScheduleModel
	for _, rec := range s.rows {
		if !want[rec.ClassScheduleClassID] {
			continue
		}
		if from != nil && !rec.ClassScheduleEndAt.After(*from) {
			continue
		}
		if to != nil && !rec.ClassScheduleStartAt.Before(*to) {
			continue
		}
		out = append(out, *rec)
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(rows []model.ClassScheduleModel) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ClassScheduleStartAt.Before(rows[j].ClassScheduleStartAt)
	})
}

func (s *memStore) count() int { return len(s.rows) }

func (s *memStore) byStatus(status model.ScheduleStatus) int {
	n := 0
	for _, rec := range s.rows {
		if rec.ClassScheduleStatus == status {
			n++
		}
	}
	return n
}

/* =========================
   In-memory ClassDirectory
   ========================= */

type memDirectory struct {
	classes    map[uuid.UUID]repo.ClassInfo
	lessons    map[uuid.UUID]repo.LessonInfo
	enrollment map[uuid.UUID][]uuid.UUID // userID -> classIDs
}

func newMemDirectory() *memDirectory {
	return &memDirectory{
		classes:    make(map[uuid.UUID]repo.ClassInfo),
		lessons:    make(map[uuid.UUID]repo.LessonInfo),
		enrollment: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (d *memDirectory) addClass(name string, teacherID uuid.UUID) repo.ClassInfo {
	info := repo.ClassInfo{
		ID:              uuid.New(),
		Name:            name,
		TeacherID:       teacherID,
		CurriculumID:    uuid.New(),
		CurriculumTitle: name + " curriculum",
	}
	d.classes[info.ID] = info
	return info
}

func (d *memDirectory) addLesson(classID uuid.UUID, title string) repo.LessonInfo {
	info := repo.LessonInfo{ID: uuid.New(), ClassID: classID, Title: title}
	d.lessons[info.ID] = info
	return info
}

func (d *memDirectory) GetClass(ctx context.Context, id uuid.UUID) (*repo.ClassInfo, error) {
	info, ok := d.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &info, nil
}

func (d *memDirectory) GetLesson(ctx context.Context, id uuid.UUID) (*repo.LessonInfo, error) {
	info, ok := d.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &info, nil
}

func (d *memDirectory) ListClassesForUser(ctx context.Context, userID uuid.UUID, role string) ([]repo.ClassInfo, error) {
	var out []repo.ClassInfo
	if role == "teacher" || role == "admin" {
		for _, info := range d.classes {
			if info.TeacherID == userID {
				out = append(out, info)
			}
		}
		return out, nil
	}
	for _, classID := range d.enrollment[userID] {
		if info, ok := d.classes[classID]; ok {
			out = append(out, info)
		}
	}
	return out, nil
}

// failingDirectory simulates an unreachable class store.
type failingDirectory struct {
	*memDirectory
	err error
}

func (d *failingDirectory) GetClass(ctx context.Context, id uuid.UUID) (*repo.ClassInfo, error) {
	return nil, d.err
}

/* =========================
   Shared fixtures
   ========================= */

func newTestWriter() (*ScheduleWriter, *memStore, *memDirectory) {
	store := newMemStore()
	dir := newMemDirectory()
	w := NewScheduleWriter(store, dir)
	return w, store, dir
}

func strptr(s string) *string { return &s }

func mustDate(t string) time.Time {
	ts, err := time.Parse(time.RFC3339, t)
	if err != nil {
		panic(err)
	}
	return ts
}
