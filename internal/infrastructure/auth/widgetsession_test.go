package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidgetSessionService_MintAndVerify(t *testing.T) {
	svc := NewWidgetSessionService("test-secret", 60)

	session, err := svc.Mint("usr_abc", "vnd_xyz")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "usr_abc", session.UserID)
	assert.Equal(t, "vnd_xyz", session.VendorID)
	assert.EqualValues(t, 3600, session.ExpiresIn)

	claims, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "usr_abc", claims.UserID)
	assert.Equal(t, "vnd_xyz", claims.VendorID)
}

func TestWidgetSessionService_Verify(t *testing.T) {
	svc := NewWidgetSessionService("test-secret", 60)

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		other := NewWidgetSessionService("other-secret", 60)
		session, err := other.Mint("usr_abc", "vnd_xyz")
		require.NoError(t, err)

		_, err = svc.Verify(session.Token)
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		now := time.Now().UTC()
		claims := &SessionClaims{
			UserID:   "usr_abc",
			VendorID: "vnd_xyz",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("token without identity claims is rejected", func(t *testing.T) {
		now := time.Now().UTC()
		claims := &SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.Verify("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestWidgetSessionService_ValidateBearer(t *testing.T) {
	svc := NewWidgetSessionService("test-secret", 60)
	session, err := svc.Mint("usr_abc", "vnd_xyz")
	require.NoError(t, err)

	t.Run("well-formed header validates", func(t *testing.T) {
		claims, err := svc.ValidateBearer("Bearer " + session.Token)
		require.NoError(t, err)
		assert.Equal(t, "usr_abc", claims.UserID)
	})

	cases := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"missing scheme", session.Token},
		{"wrong scheme", "Basic " + session.Token},
		{"scheme without token", "Bearer "},
		{"lowercase scheme", "bearer " + session.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateBearer(tc.header)
			assert.Error(t, err)
		})
	}
}
