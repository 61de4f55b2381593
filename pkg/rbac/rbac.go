package rbac

import "fmt"

// 权限常量
const (
	PermissionReadProject   = "project:read"
	PermissionWriteProject  = "project:write"
	PermissionDeleteProject = "project:delete"

	PermissionReadTask   = "task:read"
	PermissionCreateTask = "task:create"
	PermissionUpdateTask = "task:update"
	PermissionDeleteTask = "task:delete"

	PermissionWriteDependency = "dependency:write"
	PermissionExport          = "project:export"
	PermissionManageUsers     = "user:manage"
)

// 角色常量
const (
	RoleSystemAdmin    = "system_admin"
	RoleProjectOwner   = "project_owner"
	RoleProjectManager = "project_manager"
	RoleTeamMember     = "team_member"
	RoleViewer         = "viewer"
)

var readOnly = []string{PermissionReadProject, PermissionReadTask, PermissionExport}

var planner = append([]string{
	PermissionWriteProject,
	PermissionDeleteProject,
	PermissionCreateTask,
	PermissionUpdateTask,
	PermissionDeleteTask,
	PermissionWriteDependency,
}, readOnly...)

// 角色权限映射. system_admin is handled in HasPermission.
var rolePermissions = map[string]map[string]bool{
	RoleProjectOwner:   set(planner...),
	RoleProjectManager: set(planner...),
	RoleTeamMember:     set(append([]string{PermissionUpdateTask}, readOnly...)...),
	RoleViewer:         set(readOnly...),
}

func set(perms ...string) map[string]bool {
	m := make(map[string]bool, len(perms))
	for _, p := range perms {
		m[p] = true
	}
	return m
}

// HasPermission 检查角色是否有指定权限
func HasPermission(role, permission string) bool {
	if role == RoleSystemAdmin {
		return true
	}
	return rolePermissions[role][permission]
}

// CheckPermission returns *PermissionDeniedError when role lacks permission.
func CheckPermission(userID int, role, permission string) error {
	if !HasPermission(role, permission) {
		return &PermissionDeniedError{
			UserID:     userID,
			Role:       role,
			Permission: permission,
		}
	}
	return nil
}

// PermissionDeniedError 表示权限不足的错误
type PermissionDeniedError struct {
	UserID     int
	Role       string
	Permission string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("insufficient permissions: role %q lacks %s", e.Role, e.Permission)
}
