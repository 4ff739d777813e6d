//go:build unit

package user_test

import (
	"testing"

	"salon-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	cases := []struct {
		role user.Role
		min  user.Role
		want bool
	}{
		{user.RoleAdmin, user.RoleStaff, true},
		{user.RoleStaff, user.RoleStaff, true},
		{user.RoleCustomer, user.RoleStaff, false},
		{user.RoleCustomer, user.RoleCustomer, true},
		{user.Role("GUEST"), user.RoleCustomer, false},
		{user.RoleAdmin, user.Role("ROOT"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.role.AtLeast(tc.min), "%s >= %s", tc.role, tc.min)
	}

	_, err := user.NewRole("admin")
	assert.ErrorIs(t, err, user.ErrInvalidRole)

	r, err := user.NewRole("STAFF")
	assert.NoError(t, err)
	assert.Equal(t, user.RoleStaff, r)
}

func TestActorCanAccess(t *testing.T) {
	owner := uuid.New()
	assert.True(t, user.Actor{ID: owner, Role: user.RoleCustomer}.CanAccess(owner))
	assert.False(t, user.Actor{ID: uuid.New(), Role: user.RoleCustomer}.CanAccess(owner))
	assert.True(t, user.Actor{ID: uuid.New(), Role: user.RoleStaff}.CanAccess(owner))
	assert.True(t, user.Actor{ID: uuid.New(), Role: user.RoleAdmin}.CanAccess(owner))
}
