package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/hospital-console/internal/domain"
)

func TestIdentityCloneDoesNotAlias(t *testing.T) {
	id := &domain.Identity{ID: 7, Username: "alice", Roles: []string{"ROLE_ADMIN"}}

	cp := id.Clone()
	cp.Roles[0] = "ROLE_MEDECIN"

	assert.Equal(t, []string{"ROLE_ADMIN"}, id.Roles)
	assert.Nil(t, (*domain.Identity)(nil).Clone())
}

func TestIdentityRoles(t *testing.T) {
	id := &domain.Identity{Roles: []string{"ROLE_MEDECIN"}}

	assert.True(t, id.HasAnyRole(domain.RoleMedecin.String()))
	assert.False(t, id.HasAnyRole(domain.RoleAdmin.String()))
	assert.True(t, id.HasAnyRole("ROLE_ADMIN", "ROLE_MEDECIN"))
	assert.False(t, id.HasAnyRole())
	assert.False(t, (*domain.Identity)(nil).HasAnyRole("ROLE_MEDECIN"))
}

func TestIdentityExpiredAt(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	id := &domain.Identity{ExpiresAt: now}

	assert.True(t, id.ExpiredAt(now), "exp == now counts as expired")
	assert.False(t, id.ExpiredAt(now.Add(-time.Second)))
	assert.True(t, (*domain.Identity)(nil).ExpiredAt(now))
}

func TestSessionStateClone(t *testing.T) {
	state := domain.SessionState{
		Identity:      &domain.Identity{Roles: []string{"ROLE_ADMIN"}},
		Authenticated: true,
	}

	snap := state.Clone()
	snap.Identity.Roles = append(snap.Identity.Roles[:0], "ROLE_INFIRMIER")

	assert.Equal(t, []string{"ROLE_ADMIN"}, state.Identity.Roles)
	assert.Equal(t, domain.SessionState{}, domain.Unauthenticated())
}

func TestPageRequestDefaults(t *testing.T) {
	got := domain.PageRequest{Page: -1}.WithDefaults("lastName,asc")

	assert.Equal(t, domain.PageRequest{Page: 0, Size: 10, Sort: "lastName,asc"}, got)
}
