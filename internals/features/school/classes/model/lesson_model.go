// file: internals/features/school/classes/model/lesson_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonModel is one curriculum lesson. Binding a lesson to a schedule
// record is the engine's job; this side only carries the catalog.
type LessonModel struct {
	LessonID uuid.UUID `gorm:"column:lesson_id;type:uuid;default:gen_random_uuid();primaryKey" json:"lesson_id"`

	LessonClassID      uuid.UUID `gorm:"column:lesson_class_id;type:uuid;not null;index" json:"lesson_class_id"`
	LessonCurriculumID uuid.UUID `gorm:"column:lesson_curriculum_id;type:uuid;not null;index" json:"lesson_curriculum_id"`

	LessonTitle      string `gorm:"column:lesson_title;type:varchar(160);not null" json:"lesson_title"`
	LessonOrderIndex int    `gorm:"column:lesson_order_index;not null;default:0" json:"lesson_order_index"`

	LessonCreatedAt time.Time      `gorm:"column:lesson_created_at;type:timestamptz;not null;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time      `gorm:"column:lesson_updated_at;type:timestamptz;not null;autoUpdateTime" json:"lesson_updated_at"`
	LessonDeletedAt gorm.DeletedAt `gorm:"column:lesson_deleted_at;index" json:"lesson_deleted_at,omitempty"`
}

func (LessonModel) TableName() string { return "lessons" }
