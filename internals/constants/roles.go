// file: internals/constants/roles.go
package constants

import "fmt"

// Role claim values carried in the JWT.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// TeacherAndAbove is the allow-list for schedule mutation routes.
var TeacherAndAbove = []string{RoleAdmin, RoleTeacher}

// Role error message templates
const ErrOnlyTeachersCanAccess = "Only teachers or admins may access %s."

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}
