// file: internals/features/school/schedules/dto/class_schedule_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"
)

func TestCreateSingleRequestParsesWallClock(t *testing.T) {
	req := CreateSingleScheduleRequest{
		ClassScheduleClassID:         uuid.New(),
		ClassScheduleSessionType:     "live",
		ClassScheduleStartLocal:      "2026-03-02T10:00",
		ClassScheduleDurationMinutes: 60,
		ClassScheduleTzOffsetMinutes: 420,
	}
	in, err := req.ToInput(uuid.New())
	if err != nil {
		t.Fatalf("ToInput: %v", err)
	}
	if in.StartAt.Hour() != 10 || in.StartAt.Minute() != 0 {
		t.Errorf("anchor = %v, want wall clock 10:00", in.StartAt)
	}
	if in.TZOffsetMin != 420 {
		t.Errorf("tz offset = %d", in.TZOffsetMin)
	}

	// seconds variant also accepted
	req.ClassScheduleStartLocal = "2026-03-02T10:00:30"
	if _, err := req.ToInput(uuid.New()); err != nil {
		t.Errorf("seconds layout rejected: %v", err)
	}

	req.ClassScheduleStartLocal = "02/03/2026 10:00"
	if _, err := req.ToInput(uuid.New()); err == nil {
		t.Error("malformed start accepted")
	}
}

func TestUpdateRequestLessonClearing(t *testing.T) {
	empty := []string{}
	req := UpdateScheduleRequest{ClassScheduleLessonIDs: &empty}
	patch, err := req.ToPatch()
	if err != nil {
		t.Fatalf("ToPatch: %v", err)
	}
	if patch.LessonIDs == nil {
		t.Fatal("explicit empty list must clear bindings, not mean unchanged")
	}
	if len(*patch.LessonIDs) != 0 {
		t.Errorf("lessons = %v, want empty", *patch.LessonIDs)
	}

	// absent field means unchanged
	patch, err = UpdateScheduleRequest{}.ToPatch()
	if err != nil {
		t.Fatalf("ToPatch: %v", err)
	}
	if patch.LessonIDs != nil {
		t.Error("absent lessons field must leave bindings unchanged")
	}
}
