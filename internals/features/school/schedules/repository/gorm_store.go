// file: internals/features/school/schedules/repository/gorm_store.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "kelasku_backend/internals/features/school/schedules/model"
)

var terminalStatuses = []model.ScheduleStatus{
	model.ScheduleStatusCompleted,
	model.ScheduleStatusCancelled,
}

type GormScheduleStore struct{ DB *gorm.DB }

func NewScheduleStore(db *gorm.DB) *GormScheduleStore { return &GormScheduleStore{DB: db} }

func (s *GormScheduleStore) WithinTx(ctx context.Context, fn func(tx ScheduleStore) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormScheduleStore{DB: tx})
	})
}

func (s *GormScheduleStore) Create(ctx context.Context, rec *model.ClassScheduleModel) error {
	return s.DB.WithContext(ctx).Create(rec).Error
}

func (s *GormScheduleStore) CreateBatch(ctx context.Context, recs []*model.ClassScheduleModel) error {
	if len(recs) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Create(recs).Error
}

func (s *GormScheduleStore) Save(ctx context.Context, rec *model.ClassScheduleModel) error {
	return s.DB.WithContext(ctx).Save(rec).Error
}

func (s *GormScheduleStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassScheduleModel, error) {
	var rec model.ClassScheduleModel
	err := s.DB.WithContext(ctx).
		Where("class_schedule_id = ?", id).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormScheduleStore) GetByRoomName(ctx context.Context, roomName string) (*model.ClassScheduleModel, error) {
	var rec model.ClassScheduleModel
	err := s.DB.WithContext(ctx).
		Where("class_schedule_room_name = ?", roomName).
		Take(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormScheduleStore) ListOverlapping(ctx context.Context, scope ConflictScope, start, end time.Time, excludeID uuid.UUID) ([]model.ClassScheduleModel, error) {
	q := s.DB.WithContext(ctx).
		Model(&model.ClassScheduleModel{}).
		Where("class_schedule_status NOT IN ?", terminalStatuses).
		// half-open overlap: touching endpoints do not conflict
		Where("class_schedule_start_at < ? AND class_schedule_end_at > ?", end, start)

	switch scope.Kind {
	case ScopeTeacher:
		q = q.Where("class_schedule_teacher_id = ?", scope.TeacherID)
	case ScopeClass:
		q = q.Where("class_schedule_class_id = ?", scope.ClassID)
	case ScopeCurriculumInClass:
		q = q.Where("class_schedule_curriculum_id = ? AND class_schedule_class_id = ?", scope.CurriculumID, scope.ClassID)
	}
	if excludeID != uuid.Nil {
		q = q.Where("class_schedule_id <> ?", excludeID)
	}

	var rows []model.ClassScheduleModel
	if err := q.Order("class_schedule_start_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormScheduleStore) ListLessonBound(ctx context.Context, classID uuid.UUID, excludeID uuid.UUID) ([]model.ClassScheduleModel, error) {
	q := s.DB.WithContext(ctx).
		Model(&model.ClassScheduleModel{}).
		Where("class_schedule_class_id = ?", classID).
		Where("class_schedule_status NOT IN ?", terminalStatuses).
		Where("cardinality(class_schedule_lesson_ids) > 0")
	if excludeID != uuid.Nil {
		q = q.Where("class_schedule_id <> ?", excludeID)
	}

	var rows []model.ClassScheduleModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormScheduleStore) ListSeries(ctx context.Context, rootID uuid.UUID) ([]model.ClassScheduleModel, error) {
	var rows []model.ClassScheduleModel
	err := s.DB.WithContext(ctx).
		Where("class_schedule_id = ? OR class_schedule_parent_id = ?", rootID, rootID).
		Order("class_schedule_start_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormScheduleStore) ListForClasses(ctx context.Context, classIDs []uuid.UUID, from, to *time.Time) ([]model.ClassScheduleModel, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}
	q := s.DB.WithContext(ctx).
		Model(&model.ClassScheduleModel{}).
		Where("class_schedule_class_id IN ?", classIDs)
	if from != nil {
		q = q.Where("class_schedule_end_at > ?", *from)
	}
	if to != nil {
		q = q.Where("class_schedule_start_at < ?", *to)
	}

	var rows []model.ClassScheduleModel
	if err := q.Order("class_schedule_start_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
