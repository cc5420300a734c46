// file: internals/features/school/classes/route/class_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classctl "kelasku_backend/internals/features/school/classes/controller"
)

// ClassUserRoutes registers the read-only class directory surface.
func ClassUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := classctl.New(db, v)

	grp := user.Group("/classes")
	grp.Get("/", ctl.ListMine)
	grp.Get("/:id", ctl.GetByID)
}
