// file: internals/features/school/classes/dto/class_dto.go
package dto

import (
	"github.com/google/uuid"

	model "kelasku_backend/internals/features/school/classes/model"
)

type ClassResponse struct {
	ClassID              uuid.UUID `json:"class_id"`
	ClassName            string    `json:"class_name"`
	ClassTeacherID       uuid.UUID `json:"class_teacher_id"`
	ClassCurriculumID    uuid.UUID `json:"class_curriculum_id"`
	ClassCurriculumTitle string    `json:"class_curriculum_title"`
	ClassIsActive        bool      `json:"class_is_active"`
}

func FromClassModel(m model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:              m.ClassID,
		ClassName:            m.ClassName,
		ClassTeacherID:       m.ClassTeacherID,
		ClassCurriculumID:    m.ClassCurriculumID,
		ClassCurriculumTitle: m.ClassCurriculumTitle,
		ClassIsActive:        m.ClassIsActive,
	}
}

type LessonResponse struct {
	LessonID         uuid.UUID `json:"lesson_id"`
	LessonClassID    uuid.UUID `json:"lesson_class_id"`
	LessonTitle      string    `json:"lesson_title"`
	LessonOrderIndex int       `json:"lesson_order_index"`
}

func FromLessonModel(m model.LessonModel) LessonResponse {
	return LessonResponse{
		LessonID:         m.LessonID,
		LessonClassID:    m.LessonClassID,
		LessonTitle:      m.LessonTitle,
		LessonOrderIndex: m.LessonOrderIndex,
	}
}

type ClassDetailResponse struct {
	ClassResponse
	Lessons []LessonResponse `json:"lessons"`
}
