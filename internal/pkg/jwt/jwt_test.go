package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	employeeID := "9f3b1c2a-4d5e-4f60-8a7b-123456789abc"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", &employeeID, "accountant")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, employeeID, claims["employee_id"])
	assert.Equal(t, "accountant", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessTokenWithoutEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	tokenString, _, err := svc.GenerateAccessToken("user-2", nil, "employee")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	_, hasEmployee := claims["employee_id"]
	assert.False(t, hasEmployee)
}

func TestGenerateAccessTokenRejectsBadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("user-1", nil, "employee")
	assert.Error(t, err)
}
