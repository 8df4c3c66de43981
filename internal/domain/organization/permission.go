package organization

type Permission string

const (
	PermissionClockOwn          Permission = "clock.own"
	PermissionClockViewAll      Permission = "clock.view_all"
	PermissionClockCorrect      Permission = "clock.correct"
	PermissionNowBoardView      Permission = "now_board.view"
	PermissionSettingsView      Permission = "settings.view"
	PermissionSettingsManage    Permission = "settings.manage"
	PermissionHolidayYearView   Permission = "holiday_year.view"
	PermissionHolidayYearManage Permission = "holiday_year.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionClockOwn,
		PermissionClockViewAll,
		PermissionClockCorrect,
		PermissionNowBoardView,
		PermissionSettingsView,
		PermissionSettingsManage,
		PermissionHolidayYearView,
		PermissionHolidayYearManage,
	},
	RoleManager: {
		PermissionClockOwn,
		PermissionClockViewAll,
		PermissionClockCorrect,
		PermissionNowBoardView,
		PermissionSettingsView,
		PermissionHolidayYearView,
		PermissionHolidayYearManage,
	},
	RoleEmployee: {
		PermissionClockOwn,
		PermissionSettingsView,
	},
}

func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
