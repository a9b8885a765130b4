package supabase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stallion/errors"
)

func TestKeyRole(t *testing.T) {
	req := require.New(t)

	role, err := KeyRole(signedKey(t, RoleServiceRole))
	req.NoError(err)
	req.Equal(RoleServiceRole, role)

	role, err = KeyRole("sb_secret_abc")
	req.NoError(err)
	req.Empty(role)

	_, err = KeyRole("not.a.jwt")
	req.Error(err)
}

func TestCheckKeyRole(t *testing.T) {
	req := require.New(t)
	req.NoError(CheckKeyRole(signedKey(t, RoleAnon), RoleAnon))
	req.NoError(CheckKeyRole("sb_publishable_abc", RoleAnon))
	req.ErrorIs(CheckKeyRole(signedKey(t, RoleAnon), RoleServiceRole), errors.ErrKeyRoleMismatch)
}
