// file: internals/features/school/schedules/service/projection_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestListForActorTeacherSeesTaughtClasses(t *testing.T) {
	ctx := context.Background()
	w, _, dir := newTestWriter()
	teacher := uuid.New()
	mine := dir.addClass("Algebra", teacher)
	other := dir.addClass("History", uuid.New())

	if _, err := w.CreateSingle(ctx, singleInput(mine.ID, "Mine", mustDate("2026-03-02T10:00:00Z"), 60)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := w.CreateSingle(ctx, singleInput(other.ID, "Other", mustDate("2026-03-02T10:00:00Z"), 60)); err != nil {
		t.Fatalf("create: %v", err)
	}

	views, err := w.ListForActor(ctx, teacher, "teacher", nil, nil)
	if err != nil {
		t.Fatalf("ListForActor: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	if views[0].ClassName != "Algebra" || views[0].CurriculumTitle == "" {
		t.Errorf("view not annotated: %+v", views[0])
	}
	if views[0].IsLive {
		t.Error("scheduled session must not report live")
	}
}

func TestListForActorStudentWindowFilter(t *testing.T) {
	ctx := context.Background()
	w, _, dir := newTestWriter()
	cls := dir.addClass("Algebra", uuid.New())
	student := uuid.New()
	dir.enrollment[student] = []uuid.UUID{cls.ID}

	if _, err := w.CreateSingle(ctx, singleInput(cls.ID, "In window", mustDate("2026-03-02T10:00:00Z"), 60)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := w.CreateSingle(ctx, singleInput(cls.ID, "Out of window", mustDate("2026-04-01T10:00:00Z"), 60)); err != nil {
		t.Fatalf("create: %v", err)
	}

	from := mustDate("2026-03-01T00:00:00Z")
	to := mustDate("2026-03-08T00:00:00Z")
	views, err := w.ListForActor(ctx, student, "student", &from, &to)
	if err != nil {
		t.Fatalf("ListForActor: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	if views[0].ClassScheduleTitle == nil || *views[0].ClassScheduleTitle != "In window" {
		t.Errorf("wrong record surfaced: %+v", views[0].ClassScheduleTitle)
	}

	// Unenrolled user sees nothing.
	none, err := w.ListForActor(ctx, uuid.New(), "student", nil, nil)
	if err != nil {
		t.Fatalf("ListForActor: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unenrolled views = %d, want 0", len(none))
	}
}
