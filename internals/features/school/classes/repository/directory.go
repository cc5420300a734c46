// file: internals/features/school/classes/repository/directory.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
	classModel "kelasku_backend/internals/features/school/classes/model"
	schedRepo "kelasku_backend/internals/features/school/schedules/repository"
)

// GormClassDirectory is the classes-side implementation of the schedule
// engine's read-only class directory contract.
type GormClassDirectory struct{ DB *gorm.DB }

func NewClassDirectory(db *gorm.DB) *GormClassDirectory { return &GormClassDirectory{DB: db} }

var _ schedRepo.ClassDirectory = (*GormClassDirectory)(nil)

func (d *GormClassDirectory) GetClass(ctx context.Context, id uuid.UUID) (*schedRepo.ClassInfo, error) {
	var row classModel.ClassModel
	err := d.DB.WithContext(ctx).
		Where("class_id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &schedRepo.ClassInfo{
		ID:              row.ClassID,
		Name:            row.ClassName,
		TeacherID:       row.ClassTeacherID,
		CurriculumID:    row.ClassCurriculumID,
		CurriculumTitle: row.ClassCurriculumTitle,
	}, nil
}

func (d *GormClassDirectory) GetLesson(ctx context.Context, id uuid.UUID) (*schedRepo.LessonInfo, error) {
	var row classModel.LessonModel
	err := d.DB.WithContext(ctx).
		Where("lesson_id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &schedRepo.LessonInfo{
		ID:      row.LessonID,
		ClassID: row.LessonClassID,
		Title:   row.LessonTitle,
	}, nil
}

func (d *GormClassDirectory) ListClassesForUser(ctx context.Context, userID uuid.UUID, role string) ([]schedRepo.ClassInfo, error) {
	q := d.DB.WithContext(ctx).Model(&classModel.ClassModel{}).
		Where("class_is_active = TRUE")

	if role == constants.RoleTeacher || role == constants.RoleAdmin {
		q = q.Where("class_teacher_id = ?", userID)
	} else {
		q = q.Where(
			"class_id IN (?)",
			d.DB.Model(&classModel.ClassEnrollmentModel{}).
				Select("class_enrollment_class_id").
				Where("class_enrollment_user_id = ?", userID),
		)
	}

	var rows []classModel.ClassModel
	if err := q.Order("class_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]schedRepo.ClassInfo, 0, len(rows))
	for _, r := range rows {
		out = append(out, schedRepo.ClassInfo{
			ID:              r.ClassID,
			Name:            r.ClassName,
			TeacherID:       r.ClassTeacherID,
			CurriculumID:    r.ClassCurriculumID,
			CurriculumTitle: r.ClassCurriculumTitle,
		})
	}
	return out, nil
}

// ListLessons returns the ordered lesson catalog of one class.
func (d *GormClassDirectory) ListLessons(ctx context.Context, classID uuid.UUID) ([]classModel.LessonModel, error) {
	var rows []classModel.LessonModel
	err := d.DB.WithContext(ctx).
		Where("lesson_class_id = ?", classID).
		Order("lesson_order_index ASC, lesson_title ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
