// file: internals/features/school/classes/controller/class_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"

	d "kelasku_backend/internals/features/school/classes/dto"
	m "kelasku_backend/internals/features/school/classes/model"
	repo "kelasku_backend/internals/features/school/classes/repository"
)

type ClassController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Dir      *repo.GormClassDirectory
}

func New(db *gorm.DB, v *validator.Validate) *ClassController {
	return &ClassController{DB: db, Validate: v, Dir: repo.NewClassDirectory(db)}
}

// GET /classes — classes relevant to the actor (taught or enrolled)
func (ctl *ClassController) ListMine(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	role := helperAuth.GetRoleFromToken(c)
	pg := helper.ResolvePaging(c, 20, 100)

	infos, err := ctl.Dir.ListClassesForUser(c.UserContext(), actorID, role)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	total := int64(len(infos))
	lo := pg.Offset
	if lo > len(infos) {
		lo = len(infos)
	}
	hi := lo + pg.Limit
	if hi > len(infos) {
		hi = len(infos)
	}

	out := make([]d.ClassResponse, 0, hi-lo)
	for _, info := range infos[lo:hi] {
		out = append(out, d.ClassResponse{
			ClassID:              info.ID,
			ClassName:            info.Name,
			ClassTeacherID:       info.TeacherID,
			ClassCurriculumID:    info.CurriculumID,
			ClassCurriculumTitle: info.CurriculumTitle,
			ClassIsActive:        true,
		})
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

// GET /classes/:id — one class with its lesson catalog
func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(idStr)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, fmt.Sprintf("invalid class id %q", idStr))
	}

	var cls m.ClassModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("class_id = ?", id).
		Take(&cls).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "class not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	lessons, err := ctl.Dir.ListLessons(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	resp := d.ClassDetailResponse{ClassResponse: d.FromClassModel(cls)}
	resp.Lessons = make([]d.LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		resp.Lessons = append(resp.Lessons, d.FromLessonModel(l))
	}
	return helper.JsonOK(c, "ok", resp)
}
