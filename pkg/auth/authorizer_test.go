package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T", err)
	return appErr.Code
}

func TestAuthorizeDecodeOnly(t *testing.T) {
	authz := auth.NewAuthorizer(auth.DecodeOnly{})
	aliceToken := signHS256(t, "any-secret", jwt.MapClaims{"username": "alice", "kind": "user"})

	tests := []struct {
		name   string
		header string
		owner  auth.Principal
		status int
	}{
		{"missing header", "", auth.User("alice"), http.StatusUnauthorized},
		{"no bearer scheme", aliceToken, auth.User("alice"), http.StatusUnauthorized},
		{"wrong scheme", "Basic " + aliceToken, auth.User("alice"), http.StatusUnauthorized},
		{"empty token", "Bearer ", auth.User("alice"), http.StatusUnauthorized},
		{"undecodable token", "Bearer not-a-jwt", auth.User("alice"), http.StatusUnauthorized},
		{"token without identity", "Bearer " + signHS256(t, "x", jwt.MapClaims{"sub": "alice", "kind": "user"}), auth.User("alice"), http.StatusUnauthorized},
		{"token without kind", "Bearer " + signHS256(t, "x", jwt.MapClaims{"username": "alice"}), auth.User("alice"), http.StatusUnauthorized},
		{"unknown kind", "Bearer " + signHS256(t, "x", jwt.MapClaims{"username": "alice", "kind": "admin"}), auth.User("alice"), http.StatusUnauthorized},
		{"identity mismatch", "Bearer " + aliceToken, auth.User("bob"), http.StatusForbidden},
		{"kind mismatch", "Bearer " + aliceToken, auth.Company("alice"), http.StatusForbidden},
		{"owner matches", "Bearer " + aliceToken, auth.User("alice"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.Authorize(tt.header, tt.owner)
			if tt.status == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.status, statusOf(t, err))
		})
	}
}

func TestDecodeOnlyIgnoresSignature(t *testing.T) {
	identity, err := auth.DecodeOnly{}.Identity(signHS256(t, "attacker", jwt.MapClaims{"username": "alice", "kind": "user"}))
	require.NoError(t, err)
	assert.Equal(t, auth.User("alice"), identity)
}

func TestHMACVerifier(t *testing.T) {
	verifier := auth.HMACVerifier{Secret: []byte("server-secret")}

	t.Run("issued token round-trips", func(t *testing.T) {
		token, err := auth.NewIssuer("server-secret", time.Hour).Issue(auth.Company("acme"))
		require.NoError(t, err)

		identity, err := verifier.Identity(token)
		require.NoError(t, err)
		assert.Equal(t, auth.Company("acme"), identity)
	})

	t.Run("user token cannot act for a company with the same name", func(t *testing.T) {
		token, err := auth.NewIssuer("server-secret", time.Hour).Issue(auth.User("acme"))
		require.NoError(t, err)

		authz := auth.NewAuthorizer(verifier)
		err = authz.Authorize("Bearer "+token, auth.Company("acme"))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
		assert.NoError(t, authz.Authorize("Bearer "+token, auth.User("acme")))
	})

	t.Run("foreign signature is rejected", func(t *testing.T) {
		_, err := verifier.Identity(signHS256(t, "attacker", jwt.MapClaims{"username": "acme", "kind": "company"}))
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := auth.NewIssuer("server-secret", -time.Minute).Issue(auth.Company("acme"))
		require.NoError(t, err)
		_, err = verifier.Identity(token)
		assert.Error(t, err)
	})

	t.Run("authorizer maps verification failure to 401", func(t *testing.T) {
		authz := auth.NewAuthorizer(verifier)
		err := authz.Authorize("Bearer "+signHS256(t, "attacker", jwt.MapClaims{"username": "acme", "kind": "company"}), auth.Company("acme"))
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}

func TestIssuerRequiresSecret(t *testing.T) {
	_, err := auth.NewIssuer("", time.Hour).Issue(auth.User("alice"))
	assert.ErrorIs(t, err, auth.ErrNoSigningSecret)
}

func TestJWKSProvider(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(auth.JWKS{Keys: []auth.JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	provider := auth.NewProvider(srv.URL)

	sign := func(kid string) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"username": "alice", "kind": "user"})
		tok.Header["kid"] = kid
		s, err := tok.SignedString(key)
		require.NoError(t, err)
		return s
	}

	identity, err := provider.Identity(sign("k1"))
	require.NoError(t, err)
	assert.Equal(t, auth.User("alice"), identity)

	_, err = provider.Identity(sign("k1"))
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "keys are cached by kid")

	_, err = provider.Identity(sign("unknown"))
	assert.Error(t, err)

	_, err = provider.Identity(signHS256(t, "secret", jwt.MapClaims{"username": "alice", "kind": "user"}))
	assert.Error(t, err, "HMAC tokens are not accepted by the JWKS provider")
}
