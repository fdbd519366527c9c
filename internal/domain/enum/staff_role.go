package enum

// StaffRole is the back-office role of a staff member
type StaffRole string

const (
	StaffRoleAdmin    StaffRole = "admin"
	StaffRoleManager  StaffRole = "manager"
	StaffRoleOperator StaffRole = "operator"
	StaffRoleClerk    StaffRole = "clerk"
)

// StaffRoles lists every accepted role
var StaffRoles = []StaffRole{StaffRoleAdmin, StaffRoleManager, StaffRoleOperator, StaffRoleClerk}

func (r StaffRole) IsValid() bool {
	for _, v := range StaffRoles {
		if r == v {
			return true
		}
	}
	return false
}

// CanManageStaff reports whether the role may create or edit staff accounts
func (r StaffRole) CanManageStaff() bool {
	return r == StaffRoleAdmin || r == StaffRoleManager
}
