// file: internals/features/school/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel is the parent entity of all schedule records. Teacher and
// curriculum live here; the schedule engine reads them through the class
// directory and denormalizes them onto each record.
type ClassModel struct {
	ClassID uuid.UUID `gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_id"`

	ClassName         string    `gorm:"column:class_name;type:varchar(120);not null" json:"class_name"`
	ClassTeacherID    uuid.UUID `gorm:"column:class_teacher_id;type:uuid;not null;index" json:"class_teacher_id"`
	ClassCurriculumID uuid.UUID `gorm:"column:class_curriculum_id;type:uuid;not null;index" json:"class_curriculum_id"`

	// Snapshot so list endpoints skip a join
	ClassCurriculumTitle string `gorm:"column:class_curriculum_title;type:varchar(160);not null;default:''" json:"class_curriculum_title"`

	ClassIsActive bool `gorm:"column:class_is_active;not null;default:true" json:"class_is_active"`

	ClassCreatedAt time.Time      `gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

// ClassEnrollmentModel links students to classes; the actor projection reads
// it to merge a student's relevant schedules.
type ClassEnrollmentModel struct {
	ClassEnrollmentID uuid.UUID `gorm:"column:class_enrollment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_enrollment_id"`

	ClassEnrollmentClassID uuid.UUID `gorm:"column:class_enrollment_class_id;type:uuid;not null;index" json:"class_enrollment_class_id"`
	ClassEnrollmentUserID  uuid.UUID `gorm:"column:class_enrollment_user_id;type:uuid;not null;index" json:"class_enrollment_user_id"`

	ClassEnrollmentCreatedAt time.Time      `gorm:"column:class_enrollment_created_at;type:timestamptz;not null;autoCreateTime" json:"class_enrollment_created_at"`
	ClassEnrollmentDeletedAt gorm.DeletedAt `gorm:"column:class_enrollment_deleted_at;index" json:"class_enrollment_deleted_at,omitempty"`
}

func (ClassEnrollmentModel) TableName() string { return "class_enrollments" }
