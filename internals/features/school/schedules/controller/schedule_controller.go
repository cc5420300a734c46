// file: internals/features/school/schedules/controller/schedule_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"

	classRepo "kelasku_backend/internals/features/school/classes/repository"
	d "kelasku_backend/internals/features/school/schedules/dto"
	schedRepo "kelasku_backend/internals/features/school/schedules/repository"
	svc "kelasku_backend/internals/features/school/schedules/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type ScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Writer   *svc.ScheduleWriter
}

func New(db *gorm.DB, v *validator.Validate) *ScheduleController {
	return &ScheduleController{
		DB:       db,
		Validate: v,
		Writer:   svc.NewScheduleWriter(schedRepo.NewScheduleStore(db), classRepo.NewClassDirectory(db)),
	}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// Business errors keep their structured fields all the way to the client so
// the UI can localize (code + class name + conflict time + lesson title).
func writeScheduleError(c *fiber.Ctx, err error) error {
	se, ok := svc.AsScheduleError(err)
	if !ok {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, http.StatusConflict, "schedule already exists for this room slot")
		}
		log.Printf("[Schedule] internal error: %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	status := http.StatusUnprocessableEntity
	switch se.Code {
	case svc.ErrCodeTeacherConflict, svc.ErrCodeClassConflict, svc.ErrCodeCurriculumConflict,
		svc.ErrCodeLessonAlreadyScheduled, svc.ErrCodeScheduleImmutable:
		status = http.StatusConflict
	case svc.ErrCodeClassNotFound, svc.ErrCodeScheduleNotFound:
		status = http.StatusNotFound
	case svc.ErrCodePermissionDenied:
		status = http.StatusForbidden
	}
	return helper.JsonBusinessError(c, status, se.Message, se.Code, se)
}

func (ctl *ScheduleController) validateStruct(c *fiber.Ctx, req any) error {
	if err := ctl.Validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string][]string, len(verrs))
			for _, fe := range verrs {
				key := strings.ToLower(fe.Field())
				fields[key] = append(fields[key], fe.Tag())
			}
			return helper.JsonValidationError(c, fields)
		}
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

/* =========================
   Create
   ========================= */

// POST /schedules
func (ctl *ScheduleController) CreateSingle(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.CreateSingleScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.validateStruct(c, &req); err != nil {
		return err
	}

	in, err := req.ToInput(actorID)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	rec, err := ctl.Writer.CreateSingle(c.UserContext(), in)
	if err != nil {
		return writeScheduleError(c, err)
	}
	return helper.JsonCreated(c, "schedule created", d.FromModel(rec))
}

// POST /schedules/recurring
func (ctl *ScheduleController) CreateRecurring(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.CreateRecurringScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.validateStruct(c, &req); err != nil {
		return err
	}

	in, err := req.ToInput(actorID)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	res, err := ctl.Writer.CreateRecurring(c.UserContext(), in)
	if err != nil {
		return writeScheduleError(c, err)
	}
	return helper.JsonCreated(c, "recurring schedule created", d.CreateRecurringResponse{
		Schedules:            d.FromModels(res.Records),
		AdjustedStart:        res.AdjustedStart,
		EffectiveStartMillis: res.EffectiveStart.UnixMilli(),
	})
}

/* =========================
   Update & Delete
   ========================= */

// PATCH /schedules/:id
func (ctl *ScheduleController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var req d.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.validateStruct(c, &req); err != nil {
		return err
	}

	patch, err := req.ToPatch()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	recs, err := ctl.Writer.Update(c.UserContext(), id, patch, req.UpdateSeries)
	if err != nil {
		return writeScheduleError(c, err)
	}
	return helper.JsonUpdated(c, "schedule updated", d.FromModels(recs))
}

// DELETE /schedules/:id?series=true
func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	series, _ := helper.ParseBoolLoose(c.Query("series"))

	cancelled, err := ctl.Writer.Delete(c.UserContext(), id, series)
	if err != nil {
		return writeScheduleError(c, err)
	}
	return helper.JsonDeleted(c, "schedule cancelled", fiber.Map{"cancelled_count": cancelled})
}

/* =========================
   Status & room callbacks
   ========================= */

// POST /classroom/rooms/:room_name/live
func (ctl *ScheduleController) MarkLive(c *fiber.Ctx) error {
	roomName := strings.TrimSpace(c.Params("room_name"))
	if roomName == "" {
		return helper.JsonError(c, http.StatusBadRequest, "room_name is required")
	}

	var req d.MarkLiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	rec, err := ctl.Writer.MarkLive(c.UserContext(), roomName, req.IsLive)
	if err != nil {
		return writeScheduleError(c, err)
	}
	return helper.JsonUpdated(c, "room status updated", d.FromModel(rec))
}

// POST /schedules/:id/complete
func (ctl *ScheduleController) Complete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	rec, err := ctl.Writer.Complete(c.UserContext(), id)
	if err != nil {
		return writeScheduleError(c, err)
	}
	return helper.JsonUpdated(c, "schedule completed", d.FromModel(rec))
}

// GET /classroom/rooms/:room_name
func (ctl *ScheduleController) GetByRoom(c *fiber.Ctx) error {
	roomName := strings.TrimSpace(c.Params("room_name"))
	if roomName == "" {
		return helper.JsonError(c, http.StatusBadRequest, "room_name is required")
	}

	rec, err := ctl.Writer.GetByRoom(c.UserContext(), roomName)
	if err != nil {
		return writeScheduleError(c, err)
	}
	return helper.JsonOK(c, "ok", d.FromModel(rec))
}

/* =========================
   Projection
   ========================= */

// GET /schedules?from_millis=&to_millis=&page=&per_page=
func (ctl *ScheduleController) ListMine(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	role := helperAuth.GetRoleFromToken(c)
	pg := helper.ResolvePaging(c, 20, 100)

	var from, to *time.Time
	if v := c.QueryInt("from_millis", 0); v > 0 {
		t := time.UnixMilli(int64(v)).UTC()
		from = &t
	}
	if v := c.QueryInt("to_millis", 0); v > 0 {
		t := time.UnixMilli(int64(v)).UTC()
		to = &t
	}

	views, err := ctl.Writer.ListForActor(c.UserContext(), actorID, role, from, to)
	if err != nil {
		return writeScheduleError(c, err)
	}

	total := int64(len(views))
	lo := pg.Offset
	if lo > len(views) {
		lo = len(views)
	}
	hi := lo + pg.Limit
	if hi > len(views) {
		hi = len(views)
	}

	out := make([]d.ClassScheduleResponse, 0, hi-lo)
	for _, v := range views[lo:hi] {
		out = append(out, d.FromView(v))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}
