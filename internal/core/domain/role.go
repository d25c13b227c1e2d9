package domain

// Role is the closed set of account roles in the portal.
type Role string

const (
	RoleSuperAdmin        Role = "SUPER_ADMIN"
	RoleSupportN1         Role = "SUPPORT_N1"
	RoleSupportN2         Role = "SUPPORT_N2"
	RoleMunicipalManager  Role = "MUNICIPAL_MANAGER"
	RoleMunicipalOperator Role = "MUNICIPAL_OPERATOR"
	RoleDirector          Role = "DIRECTOR"
	RoleCoordinator       Role = "COORDINATOR"
	RoleSecretary         Role = "SECRETARY"
	RoleTeacher           Role = "TEACHER"
	RoleGuardian          Role = "GUARDIAN"
)

// Roles lists every valid role. Keep in sync with the constants above.
var Roles = []Role{
	RoleSuperAdmin,
	RoleSupportN1,
	RoleSupportN2,
	RoleMunicipalManager,
	RoleMunicipalOperator,
	RoleDirector,
	RoleCoordinator,
	RoleSecretary,
	RoleTeacher,
	RoleGuardian,
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleSupportN1, RoleSupportN2,
		RoleMunicipalManager, RoleMunicipalOperator,
		RoleDirector, RoleCoordinator, RoleSecretary,
		RoleTeacher, RoleGuardian:
		return true
	}
	return false
}

// Permission is a capability token granted wholesale per role.
type Permission string

const (
	PermManageUsers          Permission = "manage_users"
	PermManageMunicipalities Permission = "manage_municipalities"
	PermManageSchools        Permission = "manage_schools"
	PermManageSupport        Permission = "manage_support"
	PermImpersonateUsers     Permission = "impersonate_users"
	PermManageTeachers       Permission = "manage_teachers"
	PermManageDirectors      Permission = "manage_directors"
	PermManageAccess         Permission = "manage_access"
	PermImpersonateSchool    Permission = "impersonate_school_users"
	PermManageSchoolUsers    Permission = "manage_school_users"
	PermViewMunicipalData    Permission = "view_municipal_data"
	PermManageStudents       Permission = "manage_students"
	PermViewSchoolData       Permission = "view_school_data"
	PermUpdateStudentInfo    Permission = "update_student_info"
	PermManageClasses        Permission = "manage_classes"
	PermManageGrades         Permission = "manage_grades"
	PermManageAttendance     Permission = "manage_attendance"
	PermViewStudentInfo      Permission = "view_student_info"
)

// PermissionsFor resolves the fixed permission set for a role. The switch is
// exhaustive over the role enumeration so that adding a role without granting
// it permissions is visible right here; anything unrecognized gets nothing.
func PermissionsFor(role Role) []Permission {
	switch role {
	case RoleSuperAdmin:
		return []Permission{
			PermManageUsers,
			PermManageMunicipalities,
			PermManageSchools,
			PermManageSupport,
			PermImpersonateUsers,
		}
	case RoleSupportN1:
		return []Permission{
			PermManageTeachers,
			PermManageDirectors,
			PermManageAccess,
			PermImpersonateSchool,
		}
	case RoleSupportN2:
		return []Permission{
			PermManageUsers,
			PermManageMunicipalities,
			PermManageSchools,
			PermImpersonateUsers,
		}
	case RoleMunicipalManager:
		return []Permission{
			PermManageSchools,
			PermManageSchoolUsers,
			PermViewMunicipalData,
		}
	case RoleMunicipalOperator:
		return []Permission{PermViewMunicipalData}
	case RoleDirector, RoleCoordinator:
		return []Permission{
			PermManageSchoolUsers,
			PermManageStudents,
			PermViewSchoolData,
			PermUpdateStudentInfo,
		}
	case RoleSecretary:
		return []Permission{PermManageStudents, PermUpdateStudentInfo}
	case RoleTeacher:
		return []Permission{PermManageClasses, PermManageGrades, PermManageAttendance}
	case RoleGuardian:
		return []Permission{PermViewStudentInfo}
	}
	return nil
}

// HasPermission reports whether perm is in the set granted to role.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range PermissionsFor(role) {
		if p == perm {
			return true
		}
	}
	return false
}
