package auth

import "github.com/eakgun/sims-backend/internal/app/models"

// Operation names a role-restricted operation. Permissions are declared once
// in the policy table below and checked uniformly by the role middleware
// instead of being re-implemented per endpoint.
type Operation string

const (
	OpAdminCreate Operation = "admin.create"

	OpStudentList       Operation = "student.list"
	OpStudentRead       Operation = "student.read"
	OpStudentCreate     Operation = "student.create"
	OpStudentUpdate     Operation = "student.update"
	OpStudentDelete     Operation = "student.delete"
	OpStudentOwnCourses Operation = "student.own_courses"

	OpTeacherList       Operation = "teacher.list"
	OpTeacherRead       Operation = "teacher.read"
	OpTeacherCreate     Operation = "teacher.create"
	OpTeacherUpdate     Operation = "teacher.update"
	OpTeacherDelete     Operation = "teacher.delete"
	OpTeacherOwnCourses Operation = "teacher.own_courses"

	OpCourseList          Operation = "course.list"
	OpCourseRead          Operation = "course.read"
	OpCourseCreate        Operation = "course.create"
	OpCourseUpdate        Operation = "course.update"
	OpCourseDelete        Operation = "course.delete"
	OpCourseAssignTeacher Operation = "course.assign_teacher"

	OpEnrollmentCreate Operation = "enrollment.create"
	OpEnrollmentList   Operation = "enrollment.list"
	OpEnrollmentRemove Operation = "enrollment.remove"
	OpEnrollmentGrade  Operation = "enrollment.grade"
)

// policy is the single role table for the whole API.
var policy = map[Operation][]models.Role{
	OpAdminCreate: {models.RoleAdmin},

	OpStudentList:       {models.RoleAdmin},
	OpStudentRead:       {models.RoleAdmin},
	OpStudentCreate:     {models.RoleAdmin},
	OpStudentUpdate:     {models.RoleAdmin},
	OpStudentDelete:     {models.RoleAdmin},
	OpStudentOwnCourses: {models.RoleStudent},

	OpTeacherList:       {models.RoleAdmin},
	OpTeacherRead:       {models.RoleAdmin},
	OpTeacherCreate:     {models.RoleAdmin},
	OpTeacherUpdate:     {models.RoleAdmin},
	OpTeacherDelete:     {models.RoleAdmin},
	OpTeacherOwnCourses: {models.RoleTeacher},

	OpCourseList:          {models.RoleAdmin},
	OpCourseRead:          {models.RoleAdmin},
	OpCourseCreate:        {models.RoleAdmin},
	OpCourseUpdate:        {models.RoleAdmin},
	OpCourseDelete:        {models.RoleAdmin},
	OpCourseAssignTeacher: {models.RoleAdmin},

	OpEnrollmentCreate: {models.RoleAdmin},
	OpEnrollmentList:   {models.RoleAdmin},
	OpEnrollmentRemove: {models.RoleAdmin},
	OpEnrollmentGrade:  {models.RoleAdmin, models.RoleTeacher},
}

// PermittedRoles returns the roles allowed to perform an operation. An
// operation missing from the table permits nobody.
func PermittedRoles(op Operation) []models.Role {
	return policy[op]
}

// Allowed reports whether the role may perform the operation.
func Allowed(op Operation, role models.Role) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}
