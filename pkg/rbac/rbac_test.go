package rbac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role string
		perm string
		want bool
	}{
		{RoleSystemAdmin, PermissionManageUsers, true},
		{RoleProjectOwner, PermissionDeleteProject, true},
		{RoleProjectManager, PermissionWriteDependency, true},
		{RoleProjectManager, PermissionManageUsers, false},
		{RoleTeamMember, PermissionUpdateTask, true},
		{RoleTeamMember, PermissionCreateTask, false},
		{RoleViewer, PermissionReadTask, true},
		{RoleViewer, PermissionUpdateTask, false},
		{"stranger", PermissionReadTask, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasPermission(tc.role, tc.perm), "%s %s", tc.role, tc.perm)
	}
}

func TestCheckPermission(t *testing.T) {
	assert.NoError(t, CheckPermission(1, RoleProjectOwner, PermissionCreateTask))

	err := CheckPermission(7, RoleViewer, PermissionDeleteTask)
	var denied *PermissionDeniedError
	assert.True(t, errors.As(err, &denied))
	assert.Equal(t, 7, denied.UserID)
	assert.Contains(t, err.Error(), "viewer")
}
