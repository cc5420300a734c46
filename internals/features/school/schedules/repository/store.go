// file: internals/features/school/schedules/repository/store.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/schedules/model"
)

/* =========================
   Conflict scopes
   ========================= */

type ScopeKind string

const (
	ScopeTeacher           ScopeKind = "teacher"
	ScopeClass             ScopeKind = "class"
	ScopeCurriculumInClass ScopeKind = "curriculum_in_class"
)

// ConflictScope selects which dimension an overlap scan runs against.
type ConflictScope struct {
	Kind         ScopeKind
	TeacherID    uuid.UUID
	ClassID      uuid.UUID
	CurriculumID uuid.UUID
}

func TeacherScope(teacherID uuid.UUID) ConflictScope {
	return ConflictScope{Kind: ScopeTeacher, TeacherID: teacherID}
}

func ClassScope(classID uuid.UUID) ConflictScope {
	return ConflictScope{Kind: ScopeClass, ClassID: classID}
}

func CurriculumInClassScope(curriculumID, classID uuid.UUID) ConflictScope {
	return ConflictScope{Kind: ScopeCurriculumInClass, CurriculumID: curriculumID, ClassID: classID}
}

/* =========================
   Store & directory contracts
   ========================= */

// ScheduleStore is the transactional persistence surface the writer runs on.
// All mutations of one operation happen inside a single WithinTx call; the
// store's isolation is what keeps two concurrent creates from both passing
// the conflict scan.
type ScheduleStore interface {
	WithinTx(ctx context.Context, fn func(tx ScheduleStore) error) error

	Create(ctx context.Context, rec *model.ClassScheduleModel) error
	CreateBatch(ctx context.Context, recs []*model.ClassScheduleModel) error
	Save(ctx context.Context, rec *model.ClassScheduleModel) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.ClassScheduleModel, error)
	GetByRoomName(ctx context.Context, roomName string) (*model.ClassScheduleModel, error)

	// ListOverlapping returns non-terminal records in scope whose window
	// overlaps [start, end) half-open, excluding excludeID (uuid.Nil = none),
	// ordered by start ascending.
	ListOverlapping(ctx context.Context, scope ConflictScope, start, end time.Time, excludeID uuid.UUID) ([]model.ClassScheduleModel, error)

	// ListLessonBound returns non-terminal records of the class carrying at
	// least one lesson binding, excluding excludeID.
	ListLessonBound(ctx context.Context, classID uuid.UUID, excludeID uuid.UUID) ([]model.ClassScheduleModel, error)

	// ListSeries returns every instance of a series (parent included),
	// ordered by start ascending.
	ListSeries(ctx context.Context, rootID uuid.UUID) ([]model.ClassScheduleModel, error)

	// ListForClasses returns records of the given classes inside the optional
	// [from, to) window, ordered by start ascending. Used by the actor
	// projection only.
	ListForClasses(ctx context.Context, classIDs []uuid.UUID, from, to *time.Time) ([]model.ClassScheduleModel, error)
}

// ClassInfo is the read-only class→teacher/curriculum mapping the engine
// needs from the class directory.
type ClassInfo struct {
	ID              uuid.UUID
	Name            string
	TeacherID       uuid.UUID
	CurriculumID    uuid.UUID
	CurriculumTitle string
}

type LessonInfo struct {
	ID      uuid.UUID
	ClassID uuid.UUID
	Title   string
}

// ClassDirectory is supplied by the classes feature. The engine only reads
// from it; enrollment and catalog maintenance live elsewhere.
type ClassDirectory interface {
	GetClass(ctx context.Context, id uuid.UUID) (*ClassInfo, error)
	GetLesson(ctx context.Context, id uuid.UUID) (*LessonInfo, error)
	ListClassesForUser(ctx context.Context, userID uuid.UUID, role string) ([]ClassInfo, error)
}
