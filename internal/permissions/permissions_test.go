package permissions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		wire string
		want Permission
	}{
		{
			name: "three part",
			wire: "read-own-users",
			want: Permission{Action: ActionRead, Scope: ScopeOwn, Resource: "users"},
		},
		{
			name: "four part with field",
			wire: "update-own-users-avatar",
			want: Permission{Action: ActionUpdate, Scope: ScopeOwn, Resource: "users", Field: "avatar"},
		},
		{
			name: "underscored scope",
			wire: "list-within_branch-features",
			want: Permission{Action: ActionList, Scope: ScopeWithinBranch, Resource: "features"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.wire)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wire, got.String())
		})
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, wire := range []string{
		"",
		"read",
		"read-own",
		"destroy-own-users",
		"read-galaxy-users",
		"read-own-",
	} {
		t.Run(wire, func(t *testing.T) {
			_, err := Parse(wire)
			assert.Error(t, err)
		})
	}
}

func TestProtectSuperAdminBypassesEverything(t *testing.T) {
	allowed, err := Protect(ProtectParams{
		Permissions:         nil,
		RequiredPermissions: []Permission{ReadOwnUsers, UpdateOwnUsers},
		SuperAdmin:          true,
		Condition:           func([]Permission) bool { return false },
		RaiseError:          true,
	})

	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestProtectConditionVetoesContainment(t *testing.T) {
	allowed, err := Protect(ProtectParams{
		Permissions:         UserPermissions,
		RequiredPermissions: []Permission{ReadOwnUsers},
		Condition:           func([]Permission) bool { return false },
	})

	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestProtectContainmentIsOrderInsensitive(t *testing.T) {
	held := []Permission{DeleteOwnUsers, ReadOwnUsers, UpdateOwnUsers}

	allowed, err := Protect(ProtectParams{
		Permissions:         held,
		RequiredPermissions: []Permission{UpdateOwnUsers, ReadOwnUsers},
	})

	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestProtectDeniesOnMissingPermission(t *testing.T) {
	allowed, err := Protect(ProtectParams{
		Permissions:         []Permission{ReadOwnUsers},
		RequiredPermissions: []Permission{DeleteOwnUsers},
	})

	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestProtectEmptyRequiredSetAllows(t *testing.T) {
	allowed, err := Protect(ProtectParams{
		Permissions:         nil,
		RequiredPermissions: nil,
	})

	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestProtectRaiseErrorReturnsDefaultError(t *testing.T) {
	allowed, err := Protect(ProtectParams{
		Permissions:         nil,
		RequiredPermissions: []Permission{ReadOwnUsers},
		RaiseError:          true,
	})

	assert.False(t, allowed)
	require.Error(t, err)

	var permErr *PermissionError
	require.True(t, errors.As(err, &permErr))
	assert.Equal(t, "You do not have permission to perform this action", permErr.Error())
}

func TestProtectRaiseErrorPrefersCallerError(t *testing.T) {
	custom := errors.New("nope")

	allowed, err := Protect(ProtectParams{
		Permissions:         nil,
		RequiredPermissions: []Permission{ReadOwnUsers},
		RaiseError:          true,
		Err:                 custom,
	})

	assert.False(t, allowed)
	assert.ErrorIs(t, err, custom)
}

func TestProtectCallerErrorAloneOptsIntoSignaling(t *testing.T) {
	custom := errors.New("nope")

	allowed, err := Protect(ProtectParams{
		Permissions:         nil,
		RequiredPermissions: []Permission{ReadOwnUsers},
		Err:                 custom,
	})

	assert.False(t, allowed)
	assert.ErrorIs(t, err, custom)
}

func TestProtectDenialWithoutRaiseErrorIsSilent(t *testing.T) {
	allowed, err := Protect(ProtectParams{
		Permissions:         nil,
		RequiredPermissions: []Permission{ReadOwnUsers},
	})

	assert.False(t, allowed)
	assert.NoError(t, err)
}

func TestDefaultUserPermissions(t *testing.T) {
	held := DefaultPermissions["user"]

	for _, p := range []Permission{ReadOwnUsers, UpdateOwnUsers, DeleteOwnUsers} {
		allowed, err := Protect(ProtectParams{
			Permissions:         held,
			RequiredPermissions: []Permission{p},
		})
		require.NoError(t, err)
		assert.True(t, allowed, p.String())
	}

	allowed, _ := Protect(ProtectParams{
		Permissions:         held,
		RequiredPermissions: []Permission{{Action: ActionCreate, Scope: ScopeOther, Resource: "users"}},
	})
	assert.False(t, allowed)
}
