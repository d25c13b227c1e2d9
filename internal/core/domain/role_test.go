package domain

import "testing"

func TestPermissionsFor_EveryRoleGranted(t *testing.T) {
	for _, role := range Roles {
		if len(PermissionsFor(role)) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
	}
}

func TestPermissionsFor_UnknownRoleIsEmpty(t *testing.T) {
	if perms := PermissionsFor(Role("STUDENT")); perms != nil {
		t.Fatalf("expected nil permissions for unknown role, got %v", perms)
	}
	if perms := PermissionsFor(Role("")); perms != nil {
		t.Fatalf("expected nil permissions for empty role, got %v", perms)
	}
}

func TestPermissionsFor_Table(t *testing.T) {
	cases := []struct {
		role Role
		want []Permission
	}{
		{RoleSuperAdmin, []Permission{PermManageUsers, PermManageMunicipalities, PermManageSchools, PermManageSupport, PermImpersonateUsers}},
		{RoleMunicipalOperator, []Permission{PermViewMunicipalData}},
		{RoleSecretary, []Permission{PermManageStudents, PermUpdateStudentInfo}},
		{RoleTeacher, []Permission{PermManageClasses, PermManageGrades, PermManageAttendance}},
		{RoleGuardian, []Permission{PermViewStudentInfo}},
	}
	for _, tc := range cases {
		got := PermissionsFor(tc.role)
		if len(got) != len(tc.want) {
			t.Fatalf("role %s: got %d permissions, want %d", tc.role, len(got), len(tc.want))
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("role %s: permission %d = %s, want %s", tc.role, i, got[i], tc.want[i])
			}
		}
	}
}

func TestHasPermission(t *testing.T) {
	if !HasPermission(RoleTeacher, PermManageGrades) {
		t.Fatalf("teacher should hold manage_grades")
	}
	if HasPermission(RoleGuardian, PermManageGrades) {
		t.Fatalf("guardian should not hold manage_grades")
	}
}
