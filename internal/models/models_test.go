// internal/models/models_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleSide(t *testing.T) {
	assert.Equal(t, SideBlue, RoleInitiator.Side())
	assert.Equal(t, SideRed, RoleJoiner.Side())
}

func TestPlayerView(t *testing.T) {
	p := &Player{ConnID: "c1", Role: RoleInitiator, Ready: true}
	v := p.View()
	assert.Equal(t, "blue", v.Team)
	assert.True(t, v.Ready)
	assert.True(t, v.IsCreator)

	p = &Player{ConnID: "c2", Role: RoleJoiner}
	v = p.View()
	assert.Equal(t, "red", v.Team)
	assert.False(t, v.Ready)
	assert.False(t, v.IsCreator)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int
		wantPages   int
	}{
		{"partial last page", 1, 10, 15, 2},
		{"exact fit", 2, 10, 20, 2},
		{"empty history", 1, 10, 0, 0},
		{"single row", 1, 10, 1, 1},
		{"zero limit", 1, 0, 15, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.wantPages, p.TotalPages)
		})
	}
}
