// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRank(t *testing.T) {
	tests := []struct {
		role Role
		rank int
	}{
		{RoleEditor, 1},
		{RoleAdmin, 2},
		{RoleOwner, 3},
		{RoleMaster, 4},
		{Role(""), 0},
		{Role("superuser"), 0},
		{Role("Admin"), 0}, // role strings are case-sensitive
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.rank, tt.role.Rank())
		})
	}
}

func TestRoleSufficient(t *testing.T) {
	tests := []struct {
		name     string
		have     Role
		required Role
		want     bool
	}{
		{"editor meets editor", RoleEditor, RoleEditor, true},
		{"editor below admin", RoleEditor, RoleAdmin, false},
		{"admin meets editor", RoleAdmin, RoleEditor, true},
		{"admin below owner", RoleAdmin, RoleOwner, false},
		{"owner meets admin", RoleOwner, RoleAdmin, true},
		{"master meets owner", RoleMaster, RoleOwner, true},
		{"master meets master", RoleMaster, RoleMaster, true},
		{"unknown role never suffices", Role("bogus"), RoleEditor, false},
		{"unknown requirement never satisfied", RoleMaster, Role("bogus"), false},
		{"empty on both sides denied", Role(""), Role(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.have.Sufficient(tt.required))
		})
	}
}

func TestRoleGrantable(t *testing.T) {
	assert.True(t, RoleEditor.Grantable())
	assert.True(t, RoleAdmin.Grantable())
	assert.False(t, RoleOwner.Grantable())
	assert.False(t, RoleMaster.Grantable())
	assert.False(t, Role("bogus").Grantable())
	assert.False(t, Role("").Grantable())
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"editor", "admin", "owner", "master"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	for _, invalid := range []string{"", "superuser", "EDITOR", "Owner "} {
		_, err := ParseRole(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}
