package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryyderbros/wellness_server/internal/auth"
	"github.com/ryyderbros/wellness_server/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	manager := auth.NewManager("test-secret")

	user := &model.User{
		ID:    5,
		Email: "alex@example.com",
		Name:  "Alex",
		Role:  model.RoleTherapist,
	}

	token, err := manager.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), identity.UserID)
	assert.Equal(t, "alex@example.com", identity.Email)
	assert.Equal(t, "Alex", identity.Name)
	assert.Equal(t, model.RoleTherapist, identity.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewManager("secret-a").Issue(&model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)

	_, err = auth.NewManager("secret-b").Parse(token)
	require.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := auth.NewManager("test-secret").Parse("not-a-token")
	require.Error(t, err)
}

func TestRoleOneOf(t *testing.T) {
	assert.True(t, model.RoleAdmin.OneOf(model.RoleTherapist, model.RoleAdmin))
	assert.False(t, model.RoleUser.OneOf(model.RoleTherapist, model.RoleAdmin))
	assert.True(t, model.RoleTherapist.Valid())
	assert.False(t, model.Role("superuser").Valid())
}
