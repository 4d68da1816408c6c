package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserFullName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{name: "both parts", first: "Ada", last: "Lovelace", want: "Ada Lovelace"},
		{name: "first only", first: "Ada", last: "", want: "Ada"},
		{name: "last only", first: "", last: "Lovelace", want: "Lovelace"},
		{name: "neither", first: "", last: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{FirstName: tt.first, LastName: tt.last}
			assert.Equal(t, tt.want, u.FullName())
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleDispatcher, RoleTechnician, RoleSales} {
		assert.True(t, ValidRole(r), string(r))
	}
	assert.False(t, ValidRole("owner"))
	assert.False(t, ValidRole(""))
}
