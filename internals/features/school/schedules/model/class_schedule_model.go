// file: internals/features/school/schedules/model/class_schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionType string

const (
	SessionTypeLive         SessionType = "live"
	SessionTypeAsynchronous SessionType = "asynchronous"
)

func (t SessionType) Valid() bool {
	return t == SessionTypeLive || t == SessionTypeAsynchronous
}

type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// Terminal states are excluded from conflict scans and lesson-binding scans,
// and accept no further transitions.
func (s ScheduleStatus) Terminal() bool {
	return s == ScheduleStatusCompleted || s == ScheduleStatusCancelled
}

type ClassScheduleModel struct {
	// PK
	ClassScheduleID uuid.UUID `gorm:"column:class_schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_schedule_id"`

	// References (teacher & curriculum denormalized from class for conflict scoping)
	ClassScheduleClassID      uuid.UUID      `gorm:"column:class_schedule_class_id;type:uuid;not null;index" json:"class_schedule_class_id"`
	ClassScheduleTeacherID    uuid.UUID      `gorm:"column:class_schedule_teacher_id;type:uuid;not null;index" json:"class_schedule_teacher_id"`
	ClassScheduleCurriculumID uuid.UUID      `gorm:"column:class_schedule_curriculum_id;type:uuid;not null" json:"class_schedule_curriculum_id"`
	ClassScheduleLessonIDs    pq.StringArray `gorm:"column:class_schedule_lesson_ids;type:uuid[]" json:"class_schedule_lesson_ids,omitempty"`

	// Display (title wajib bila lesson kosong)
	ClassScheduleTitle       *string `gorm:"column:class_schedule_title;type:varchar(160)" json:"class_schedule_title,omitempty"`
	ClassScheduleDescription *string `gorm:"column:class_schedule_description;type:text" json:"class_schedule_description,omitempty"`

	// Session kind
	ClassScheduleSessionType SessionType `gorm:"column:class_schedule_session_type;type:session_type_enum;not null;default:'live'" json:"class_schedule_session_type"`

	// Timing (UTC instants; end > start)
	ClassScheduleStartAt time.Time `gorm:"column:class_schedule_start_at;type:timestamptz;not null;index" json:"class_schedule_start_at"`
	ClassScheduleEndAt   time.Time `gorm:"column:class_schedule_end_at;type:timestamptz;not null" json:"class_schedule_end_at"`

	// Recurrence linkage: parent_id set on every series instance except the first
	ClassScheduleIsRecurring bool              `gorm:"column:class_schedule_is_recurring;not null;default:false" json:"class_schedule_is_recurring"`
	ClassScheduleRecurrence  datatypes.JSONMap `gorm:"column:class_schedule_recurrence;type:jsonb" json:"class_schedule_recurrence,omitempty"`
	ClassScheduleParentID    *uuid.UUID        `gorm:"column:class_schedule_parent_id;type:uuid;index" json:"class_schedule_parent_id,omitempty"`

	// Status
	ClassScheduleStatus      ScheduleStatus `gorm:"column:class_schedule_status;type:schedule_status_enum;not null;default:'scheduled';index" json:"class_schedule_status"`
	ClassScheduleCompletedAt *time.Time     `gorm:"column:class_schedule_completed_at;type:timestamptz" json:"class_schedule_completed_at,omitempty"`

	// Opaque meeting-room id, unique per record
	ClassScheduleRoomName string `gorm:"column:class_schedule_room_name;type:varchar(80);not null;uniqueIndex" json:"class_schedule_room_name"`

	ClassScheduleCreatedBy uuid.UUID `gorm:"column:class_schedule_created_by;type:uuid;not null" json:"class_schedule_created_by"`

	// Audit
	ClassScheduleCreatedAt time.Time      `gorm:"column:class_schedule_created_at;type:timestamptz;not null;autoCreateTime" json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt time.Time      `gorm:"column:class_schedule_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_schedule_updated_at"`
	ClassScheduleDeletedAt gorm.DeletedAt `gorm:"column:class_schedule_deleted_at;index" json:"class_schedule_deleted_at,omitempty"`
}

func (ClassScheduleModel) TableName() string { return "class_schedules" }

func (m *ClassScheduleModel) HasLessons() bool { return len(m.ClassScheduleLessonIDs) > 0 }

// SeriesRootID returns the id linking all instances of a series: the parent id
// for children, the record's own id for the first instance.
func (m *ClassScheduleModel) SeriesRootID() uuid.UUID {
	if m.ClassScheduleParentID != nil {
		return *m.ClassScheduleParentID
	}
	return m.ClassScheduleID
}
