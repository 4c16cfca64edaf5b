package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthService_SignupIssuesVerifiablePair(t *testing.T) {
	issuer := testIssuer()
	svc := NewAuthService(issuer)

	username := uniqueUsername("signup")
	authed, err := svc.Signup("Alice", username, "secret123")
	require.NoError(t, err)

	require.NotEmpty(t, authed.AccessToken)
	require.NotEmpty(t, authed.RefreshToken)
	require.NotEqual(t, authed.AccessToken, authed.RefreshToken)
	require.Equal(t, username, authed.User.Username)

	accessClaims, err := issuer.ParseAccessToken(authed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, authed.User.ID, accessClaims.UserID)

	refreshClaims, err := issuer.ParseRefreshToken(authed.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, authed.User.ID, refreshClaims.UserID)
}

func TestAuthService_SignupConflict(t *testing.T) {
	svc := NewAuthService(testIssuer())

	username := uniqueUsername("conflict")
	_, err := svc.Signup("Alice", username, "secret123")
	require.NoError(t, err)

	_, err = svc.Signup("Other Alice", username, "different")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	issuer := testIssuer()
	svc := NewAuthService(issuer)

	username := uniqueUsername("login")
	signedUp, err := svc.Signup("Bob", username, "secret123")
	require.NoError(t, err)

	authed, err := svc.Login(username, "secret123")
	require.NoError(t, err)
	require.Equal(t, signedUp.User.ID, authed.User.ID)

	claims, err := issuer.ParseAccessToken(authed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, signedUp.User.ID, claims.UserID)
}

func TestAuthService_LoginBadCredentials(t *testing.T) {
	svc := NewAuthService(testIssuer())

	username := uniqueUsername("badcreds")
	_, err := svc.Signup("Carol", username, "secret123")
	require.NoError(t, err)

	_, err = svc.Login(username, "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(uniqueUsername("nobody"), "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshRotation(t *testing.T) {
	issuer := testIssuer()
	svc := NewAuthService(issuer)

	username := uniqueUsername("rotate")
	authed, err := svc.Signup("Dave", username, "secret123")
	require.NoError(t, err)

	oldClaims, err := issuer.ParseRefreshToken(authed.RefreshToken)
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(oldClaims)
	require.NoError(t, err)
	require.NotEqual(t, authed.RefreshToken, refreshed.RefreshToken)

	// The superseded refresh token must be rejected after rotation
	_, err = svc.RefreshTokens(oldClaims)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The new one keeps working
	newClaims, err := issuer.ParseRefreshToken(refreshed.RefreshToken)
	require.NoError(t, err)
	_, err = svc.RefreshTokens(newClaims)
	require.NoError(t, err)
}

func TestAuthService_RefreshUnknownUser(t *testing.T) {
	issuer := testIssuer()
	svc := NewAuthService(issuer)

	token, err := issuer.GenerateRefreshToken("no-such-user")
	require.NoError(t, err)
	claims, err := issuer.ParseRefreshToken(token)
	require.NoError(t, err)

	_, err = svc.RefreshTokens(claims)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_RefreshWithForgedTokenForKnownUser(t *testing.T) {
	issuer := testIssuer()
	svc := NewAuthService(issuer)

	username := uniqueUsername("forged")
	authed, err := svc.Signup("Eve", username, "secret123")
	require.NoError(t, err)

	// A second token signed with the right secret but never persisted
	// does not match the stored hash
	forged, err := issuer.GenerateRefreshToken(authed.User.ID)
	require.NoError(t, err)
	claims, err := issuer.ParseRefreshToken(forged)
	require.NoError(t, err)

	_, err = svc.RefreshTokens(claims)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}
