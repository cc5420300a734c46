// file: internals/features/school/schedules/dto/class_schedule_dto.go
package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/schedules/model"
	service "kelasku_backend/internals/features/school/schedules/service"
)

/* =========================================================
   Helpers
   ========================================================= */

// Wall-clock layouts the calendar form submits; the timezone offset rides in
// a separate field so the engine, not the client clock, owns the conversion.
var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseWallClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range wallClockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q (want YYYY-MM-DDTHH:mm[:ss])", s)
}

func parseLessonIDs(in []string) ([]uuid.UUID, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, 0, len(in))
	for _, s := range in {
		u, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid lesson id %q", s)
		}
		out = append(out, u)
	}
	return out, nil
}

func weekdaysFromInts(in []int) []time.Weekday {
	out := make([]time.Weekday, 0, len(in))
	for _, d := range in {
		out = append(out, time.Weekday(d))
	}
	return out
}

/* =========================================================
   1) REQUESTS
   ========================================================= */

type CreateSingleScheduleRequest struct {
	ClassScheduleClassID     uuid.UUID `json:"class_schedule_class_id" validate:"required"`
	ClassScheduleLessonIDs   []string  `json:"class_schedule_lesson_ids" validate:"omitempty,dive,uuid"`
	ClassScheduleTitle       *string   `json:"class_schedule_title" validate:"omitempty,max=160"`
	ClassScheduleDescription *string   `json:"class_schedule_description"`
	ClassScheduleSessionType string    `json:"class_schedule_session_type" validate:"required,oneof=live asynchronous"`

	// "2006-01-02T15:04[:05]" wall clock + offset in minutes east of UTC
	ClassScheduleStartLocal      string `json:"class_schedule_start_local" validate:"required"`
	ClassScheduleDurationMinutes int    `json:"class_schedule_duration_minutes" validate:"required"`
	ClassScheduleTzOffsetMinutes int    `json:"class_schedule_tz_offset_minutes" validate:"min=-840,max=840"`
}

func (r CreateSingleScheduleRequest) ToInput(createdBy uuid.UUID) (service.CreateSingleInput, error) {
	anchor, err := parseWallClock(r.ClassScheduleStartLocal)
	if err != nil {
		return service.CreateSingleInput{}, err
	}
	lessons, err := parseLessonIDs(r.ClassScheduleLessonIDs)
	if err != nil {
		return service.CreateSingleInput{}, err
	}
	return service.CreateSingleInput{
		ClassID:     r.ClassScheduleClassID,
		LessonIDs:   lessons,
		Title:       r.ClassScheduleTitle,
		Description: r.ClassScheduleDescription,
		SessionType: model.SessionType(r.ClassScheduleSessionType),
		StartAt:     anchor,
		DurationMin: r.ClassScheduleDurationMinutes,
		TZOffsetMin: r.ClassScheduleTzOffsetMinutes,
		CreatedBy:   createdBy,
	}, nil
}

type CreateRecurringScheduleRequest struct {
	ClassScheduleClassID     uuid.UUID `json:"class_schedule_class_id" validate:"required"`
	ClassScheduleLessonIDs   []string  `json:"class_schedule_lesson_ids" validate:"omitempty,dive,uuid"`
	ClassScheduleTitle       *string   `json:"class_schedule_title" validate:"omitempty,max=160"`
	ClassScheduleDescription *string   `json:"class_schedule_description"`
	ClassScheduleSessionType string    `json:"class_schedule_session_type" validate:"required,oneof=live asynchronous"`

	RecurrenceType        string `json:"recurrence_type" validate:"required,oneof=daily weekly biweekly monthly"`
	RecurrenceDaysOfWeek  []int  `json:"recurrence_days_of_week" validate:"omitempty,dive,min=0,max=6"`
	RecurrenceOccurrences int    `json:"recurrence_occurrences" validate:"required,min=1,max=52"`

	ClassScheduleStartLocal      string `json:"class_schedule_start_local" validate:"required"`
	ClassScheduleDurationMinutes int    `json:"class_schedule_duration_minutes" validate:"required"`
	ClassScheduleTzOffsetMinutes int    `json:"class_schedule_tz_offset_minutes" validate:"min=-840,max=840"`
}

func (r CreateRecurringScheduleRequest) ToInput(createdBy uuid.UUID) (service.CreateRecurringInput, error) {
	anchor, err := parseWallClock(r.ClassScheduleStartLocal)
	if err != nil {
		return service.CreateRecurringInput{}, err
	}
	lessons, err := parseLessonIDs(r.ClassScheduleLessonIDs)
	if err != nil {
		return service.CreateRecurringInput{}, err
	}
	return service.CreateRecurringInput{
		ClassID:     r.ClassScheduleClassID,
		LessonIDs:   lessons,
		Title:       r.ClassScheduleTitle,
		Description: r.ClassScheduleDescription,
		SessionType: model.SessionType(r.ClassScheduleSessionType),
		Type:        service.RecurrenceType(r.RecurrenceType),
		DaysOfWeek:  weekdaysFromInts(r.RecurrenceDaysOfWeek),
		Occurrences: r.RecurrenceOccurrences,
		StartAt:     anchor,
		DurationMin: r.ClassScheduleDurationMinutes,
		TZOffsetMin: r.ClassScheduleTzOffsetMinutes,
		CreatedBy:   createdBy,
	}, nil
}

type UpdateScheduleRequest struct {
	ClassScheduleTitle       *string   `json:"class_schedule_title" validate:"omitempty,max=160"`
	ClassScheduleDescription *string   `json:"class_schedule_description"`
	ClassScheduleLessonIDs   *[]string `json:"class_schedule_lesson_ids" validate:"omitempty,dive,uuid"`
	ClassScheduleSessionType *string   `json:"class_schedule_session_type" validate:"omitempty,oneof=live asynchronous"`

	ClassScheduleStartLocal      *string `json:"class_schedule_start_local"`
	ClassScheduleDurationMinutes *int    `json:"class_schedule_duration_minutes"`
	ClassScheduleTzOffsetMinutes int     `json:"class_schedule_tz_offset_minutes" validate:"min=-840,max=840"`

	UpdateSeries bool `json:"update_series"`
}

func (r UpdateScheduleRequest) ToPatch() (service.UpdatePatch, error) {
	patch := service.UpdatePatch{
		Title:       r.ClassScheduleTitle,
		Description: r.ClassScheduleDescription,
		DurationMin: r.ClassScheduleDurationMinutes,
		TZOffsetMin: r.ClassScheduleTzOffsetMinutes,
	}
	if r.ClassScheduleSessionType != nil {
		st := model.SessionType(*r.ClassScheduleSessionType)
		patch.SessionType = &st
	}
	if r.ClassScheduleStartLocal != nil {
		anchor, err := parseWallClock(*r.ClassScheduleStartLocal)
		if err != nil {
			return service.UpdatePatch{}, err
		}
		patch.StartAt = &anchor
	}
	if r.ClassScheduleLessonIDs != nil {
		lessons, err := parseLessonIDs(*r.ClassScheduleLessonIDs)
		if err != nil {
			return service.UpdatePatch{}, err
		}
		if lessons == nil {
			lessons = []uuid.UUID{}
		}
		patch.LessonIDs = &lessons
	}
	return patch, nil
}

type MarkLiveRequest struct {
	IsLive bool `json:"is_live"`
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type ClassScheduleResponse struct {
	ClassScheduleID           uuid.UUID      `json:"class_schedule_id"`
	ClassScheduleClassID      uuid.UUID      `json:"class_schedule_class_id"`
	ClassScheduleTeacherID    uuid.UUID      `json:"class_schedule_teacher_id"`
	ClassScheduleCurriculumID uuid.UUID      `json:"class_schedule_curriculum_id"`
	ClassScheduleLessonIDs    []string       `json:"class_schedule_lesson_ids,omitempty"`
	ClassScheduleTitle        *string        `json:"class_schedule_title,omitempty"`
	ClassScheduleDescription  *string        `json:"class_schedule_description,omitempty"`
	ClassScheduleSessionType  string         `json:"class_schedule_session_type"`
	ClassScheduleStartMillis  int64          `json:"class_schedule_start_millis"`
	ClassScheduleEndMillis    int64          `json:"class_schedule_end_millis"`
	ClassScheduleIsRecurring  bool           `json:"class_schedule_is_recurring"`
	ClassScheduleRecurrence   map[string]any `json:"class_schedule_recurrence,omitempty"`
	ClassScheduleParentID     *uuid.UUID     `json:"class_schedule_parent_id,omitempty"`
	ClassScheduleStatus       string         `json:"class_schedule_status"`
	ClassScheduleRoomName     string         `json:"class_schedule_room_name"`

	// Derived display fields (projection)
	ClassName       string `json:"class_name,omitempty"`
	CurriculumTitle string `json:"curriculum_title,omitempty"`
	IsLive          bool   `json:"is_live"`
}

func FromModel(m *model.ClassScheduleModel) ClassScheduleResponse {
	return ClassScheduleResponse{
		ClassScheduleID:           m.ClassScheduleID,
		ClassScheduleClassID:      m.ClassScheduleClassID,
		ClassScheduleTeacherID:    m.ClassScheduleTeacherID,
		ClassScheduleCurriculumID: m.ClassScheduleCurriculumID,
		ClassScheduleLessonIDs:    append([]string(nil), m.ClassScheduleLessonIDs...),
		ClassScheduleTitle:        m.ClassScheduleTitle,
		ClassScheduleDescription:  m.ClassScheduleDescription,
		ClassScheduleSessionType:  string(m.ClassScheduleSessionType),
		ClassScheduleStartMillis:  m.ClassScheduleStartAt.UnixMilli(),
		ClassScheduleEndMillis:    m.ClassScheduleEndAt.UnixMilli(),
		ClassScheduleIsRecurring:  m.ClassScheduleIsRecurring,
		ClassScheduleRecurrence:   m.ClassScheduleRecurrence,
		ClassScheduleParentID:     m.ClassScheduleParentID,
		ClassScheduleStatus:       string(m.ClassScheduleStatus),
		ClassScheduleRoomName:     m.ClassScheduleRoomName,
		IsLive:                    m.ClassScheduleStatus == model.ScheduleStatusActive,
	}
}

func FromModels(ms []*model.ClassScheduleModel) []ClassScheduleResponse {
	out := make([]ClassScheduleResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

func FromView(v service.ScheduleView) ClassScheduleResponse {
	resp := FromModel(&v.ClassScheduleModel)
	resp.ClassName = v.ClassName
	resp.CurriculumTitle = v.CurriculumTitle
	resp.IsLive = v.IsLive
	return resp
}

// CreateRecurringResponse wraps the created series plus the adjusted-start
// notice the form uses to sync its pending state.
type CreateRecurringResponse struct {
	Schedules            []ClassScheduleResponse `json:"schedules"`
	AdjustedStart        bool                    `json:"adjusted_start"`
	EffectiveStartMillis int64                   `json:"effective_start_millis"`
}
