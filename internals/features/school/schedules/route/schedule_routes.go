// file: internals/features/school/schedules/route/schedule_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schedctl "kelasku_backend/internals/features/school/schedules/controller"
)

// ScheduleAdminRoutes registers the mutation surface (teacher/admin group).
func ScheduleAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := schedctl.New(db, v)

	grp := admin.Group("/schedules")
	grp.Post("/", ctl.CreateSingle)
	grp.Post("/recurring", ctl.CreateRecurring)
	grp.Patch("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
	grp.Post("/:id/complete", ctl.Complete)
}

// ScheduleUserRoutes registers the read projection for any authenticated actor.
func ScheduleUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := schedctl.New(db, v)

	user.Get("/schedules", ctl.ListMine)
}

// ClassroomRoutes serves the room service callbacks (markLive + room lookup).
func ClassroomRoutes(r fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := schedctl.New(db, v)

	grp := r.Group("/classroom/rooms")
	grp.Get("/:room_name", ctl.GetByRoom)
	grp.Post("/:room_name/live", ctl.MarkLive)
}
