package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "volentia/internal/core/context"
	"volentia/internal/core/id"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	companyID := id.New()
	user := NewUser("anna.bianchi@example.com", "x", appctx.RoleHRAdmin)
	user.CompanyID = &companyID

	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)

	uc, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, "anna.bianchi@example.com", uc.Email)
	assert.Equal(t, appctx.RoleHRAdmin, uc.Role)
	assert.Equal(t, companyID.String(), uc.CompanyID)
	assert.Empty(t, uc.AssociationID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	user := NewUser("anna.bianchi@example.com", "x", appctx.RoleEndUser)

	token, _, err := NewJWTService(DefaultJWTConfig("secret-a")).GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = NewJWTService(DefaultJWTConfig("secret-b")).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
