package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	token, err := svc.generateAccessToken(context.Background(), user, time.Now().UTC())
	require.NoError(t, err)

	uid, email, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
	require.Equal(t, user.Email, email)
}

func TestGenerateTokens_SameSecond_Unique(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Username: "creator", Email: "user@example.com"}

	// iat/exp считаются в секундах: без jti два токена с одинаковым now
	// совпали бы, и ротация refresh-хэша ничего бы не меняла.
	now := time.Now().UTC()

	first, err := svc.generateRefreshToken(context.Background(), user, now)
	require.NoError(t, err)
	second, err := svc.generateRefreshToken(context.Background(), user, now)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.NotEqual(t, refreshHash(first), refreshHash(second))

	firstAccess, err := svc.generateAccessToken(context.Background(), user, now)
	require.NoError(t, err)
	secondAccess, err := svc.generateAccessToken(context.Background(), user, now)
	require.NoError(t, err)
	require.NotEqual(t, firstAccess, secondAccess)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	token, err := svc.generateAccessToken(context.Background(), user,
		time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	_, _, err = svc.ValidateAccessToken(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := accessClaims{
		UserID: uuid.NewString(),
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    svc.cfg.Auth.Issuer,
			Audience:  jwt.ClaimStrings(svc.cfg.Auth.Audience),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("attacker-secret"))
	require.NoError(t, err)

	_, _, err = svc.ValidateAccessToken(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_RefreshSecretRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	// Refresh-токен нельзя предъявить как access: секреты разные.
	refresh, err := svc.generateRefreshToken(context.Background(), user, time.Now().UTC())
	require.NoError(t, err)

	_, _, err = svc.ValidateAccessToken(refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := accessClaims{
		UserID: uuid.NewString(),
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings(svc.cfg.Auth.Audience),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(svc.cfg.Auth.AccessSecret))
	require.NoError(t, err)

	_, _, err = svc.ValidateAccessToken(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_NoneAlgRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := accessClaims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    svc.cfg.Auth.Issuer,
			Audience:  jwt.ClaimStrings(svc.cfg.Auth.Audience),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = svc.ValidateAccessToken(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{
		ID:       uuid.New(),
		Email:    "user@example.com",
		Username: "creator",
		FullName: "Test Creator",
	}

	token, err := svc.generateRefreshToken(context.Background(), user, time.Now().UTC())
	require.NoError(t, err)

	uid, err := svc.validateRefreshToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
}

func TestRefreshHash_Deterministic(t *testing.T) {
	t.Parallel()

	h1 := refreshHash("token-a")
	h2 := refreshHash("token-a")
	h3 := refreshHash("token-b")

	require.Equal(t, h1, h2)
	require.NotEqual(t, h1, h3)
	require.NotContains(t, h1, "token-a")
}
