// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	"kelasku_backend/internals/constants"
	classRoute "kelasku_backend/internals/features/school/classes/route"
	schedRoute "kelasku_backend/internals/features/school/schedules/route"
	helper "kelasku_backend/internals/helpers"
	middlewares "kelasku_backend/internals/middlewares"
	authMw "kelasku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()

	// ===================== USER (any authenticated actor) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMw.AuthMiddleware(),
	)
	schedRoute.ScheduleUserRoutes(user, db, v)
	classRoute.ClassUserRoutes(user, db, v)

	// ===================== ADMIN (teacher/admin mutations) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMw.AuthMiddleware(),
		authMw.OnlyRoles(constants.RoleErrorTeacher("jadwal kelas"), constants.TeacherAndAbove...),
		middlewares.ScheduleWriteRateLimiter(),
	)
	schedRoute.ScheduleAdminRoutes(admin, db, v)

	// ===================== INTERNAL (room service callbacks) =====================
	log.Println("[INFO] Setting up INTERNAL group (service key)...")
	internal := app.Group("/api/internal",
		InternalKeyMiddleware(),
	)
	schedRoute.ClassroomRoutes(internal, db, v)
}

// InternalKeyMiddleware guards service-to-service callbacks with a shared key.
func InternalKeyMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		want := configs.GetEnv("INTERNAL_API_KEY")
		if want == "" {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "internal API key is not configured")
		}
		if c.Get("X-Internal-Key") != want {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid internal key")
		}
		return c.Next()
	}
}
