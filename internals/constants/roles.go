package constants

import "fmt"

const (
	// head office: owns work orders and finance
	RoleHO     = "ho"
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess = "only head office or admin may access %s"
	ErrOnlyStaffCanAccess  = "only authenticated staff may access %s"
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleHO,
		RoleAdmin,
		RoleViewer,
	}

	AdminAndAbove = []string{
		RoleHO,
		RoleAdmin,
	}
)
