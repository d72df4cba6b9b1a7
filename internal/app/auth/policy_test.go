package auth

import (
	"testing"

	"github.com/eakgun/sims-backend/internal/app/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		role models.Role
		want bool
	}{
		{"admin lists students", OpStudentList, models.RoleAdmin, true},
		{"teacher cannot list students", OpStudentList, models.RoleTeacher, false},
		{"student cannot list students", OpStudentList, models.RoleStudent, false},
		{"student sees own courses", OpStudentOwnCourses, models.RoleStudent, true},
		{"admin cannot use student own-courses view", OpStudentOwnCourses, models.RoleAdmin, false},
		{"teacher sees own courses", OpTeacherOwnCourses, models.RoleTeacher, true},
		{"student cannot use teacher own-courses view", OpTeacherOwnCourses, models.RoleStudent, false},
		{"admin grades", OpEnrollmentGrade, models.RoleAdmin, true},
		{"teacher grades", OpEnrollmentGrade, models.RoleTeacher, true},
		{"student cannot grade", OpEnrollmentGrade, models.RoleStudent, false},
		{"admin enrolls", OpEnrollmentCreate, models.RoleAdmin, true},
		{"teacher cannot enroll", OpEnrollmentCreate, models.RoleTeacher, false},
		{"admin assigns teacher", OpCourseAssignTeacher, models.RoleAdmin, true},
		{"teacher cannot assign teacher", OpCourseAssignTeacher, models.RoleTeacher, false},
		{"admin creates admin", OpAdminCreate, models.RoleAdmin, true},
		{"teacher cannot create admin", OpAdminCreate, models.RoleTeacher, false},
		{"unknown operation permits nobody", Operation("bogus.op"), models.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.op, tt.role); got != tt.want {
				t.Errorf("Allowed(%q, %q) = %v, want %v", tt.op, tt.role, got, tt.want)
			}
		})
	}
}

func TestEveryOperationHasAtLeastOneRole(t *testing.T) {
	for op, roles := range policy {
		if len(roles) == 0 {
			t.Errorf("operation %q permits no role", op)
		}
		for _, role := range roles {
			if !role.Valid() {
				t.Errorf("operation %q references unknown role %q", op, role)
			}
		}
	}
}

func TestPermittedRolesUnknownOperation(t *testing.T) {
	if roles := PermittedRoles(Operation("no.such.op")); len(roles) != 0 {
		t.Errorf("PermittedRoles() = %v, want empty", roles)
	}
}
