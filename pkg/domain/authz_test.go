package domain_test

import (
	"testing"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanActOn(t *testing.T) {
	client := &domain.User{ID: 1, Role: domain.RoleClient}
	admin := &domain.User{ID: 2, Role: domain.RoleAdmin}

	assert.True(t, client.CanActOn(1))
	assert.False(t, client.CanActOn(2))
	assert.True(t, admin.CanActOn(1))
	assert.True(t, admin.CanActOn(2))
}

func TestResolveOnBehalf_Matrix(t *testing.T) {
	client := &domain.User{ID: 1, Role: domain.RoleClient}
	admin := &domain.User{ID: 2, Role: domain.RoleAdmin}

	// client acting for themselves, explicitly or implicitly
	got, err := domain.ResolveOnBehalf(client, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got)

	got, err = domain.ResolveOnBehalf(client, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got)

	// client naming someone else
	_, err = domain.ResolveOnBehalf(client, 3)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// admin must name the client
	_, err = domain.ResolveOnBehalf(admin, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	got, err = domain.ResolveOnBehalf(admin, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got)
}
