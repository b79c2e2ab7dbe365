package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodorder/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test_jwt_secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestJWTVerifier_Subject(t *testing.T) {
	v := services.NewJWTVerifier(secret, "", "")
	exp := time.Now().Add(time.Hour).Unix()

	sub, err := v.Verify(context.Background(), sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "uid-1", "exp": exp}))
	require.NoError(t, err)
	assert.Equal(t, "uid-1", sub)

	sub, err = v.Verify(context.Background(), sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": "uid-2", "exp": exp}))
	require.NoError(t, err)
	assert.Equal(t, "uid-2", sub)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v := services.NewJWTVerifier(secret, "", "")
	exp := time.Now().Add(time.Hour).Unix()

	cases := map[string]string{
		"empty":       "",
		"garbage":     "abc.def.ghi",
		"wrong key":   sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "uid", "exp": exp}),
		"expired":     sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "uid", "exp": time.Now().Add(-time.Minute).Unix()}),
		"no subject":  sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"exp": exp}),
		"alg none":    sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": "uid"}),
		"int subject": sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": 42}),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrMissingToken))
		})
	}
}

func TestJWTVerifier_IssuerAndAudience(t *testing.T) {
	v := services.NewJWTVerifier(secret, "https://issuer.example/app", "app")
	exp := time.Now().Add(time.Hour).Unix()

	good := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"sub": "uid", "exp": exp, "iss": "https://issuer.example/app", "aud": "app",
	})
	sub, err := v.Verify(context.Background(), good)
	require.NoError(t, err)
	assert.Equal(t, "uid", sub)

	wrongIss := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"sub": "uid", "exp": exp, "iss": "https://elsewhere", "aud": "app",
	})
	_, err = v.Verify(context.Background(), wrongIss)
	assert.True(t, errors.Is(err, services.ErrInvalidToken))

	noAud := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"sub": "uid", "exp": exp, "iss": "https://issuer.example/app",
	})
	_, err = v.Verify(context.Background(), noAud)
	assert.True(t, errors.Is(err, services.ErrInvalidToken))
}
