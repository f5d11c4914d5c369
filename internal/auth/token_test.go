package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"blogpost-api/internal/auth"
)

const testSecret = "super-secret-signing-key"

func newCodec(t *testing.T, lifetime time.Duration) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec(testSecret, "HS256", lifetime)
	require.NoError(t, err)
	return codec
}

func aliceUser() *auth.User {
	return &auth.User{
		UUID:     "0192f0c1-0000-7000-8000-000000000001",
		Email:    "alice@example.com",
		Username: "alice",
	}
}

func TestNewTokenCodecRejectsUnknownAlgorithm(t *testing.T) {
	_, err := auth.NewTokenCodec(testSecret, "HS42", time.Minute)
	require.Error(t, err)
}

func TestNewTokenCodecRejectsAsymmetricAlgorithm(t *testing.T) {
	_, err := auth.NewTokenCodec(testSecret, "RS256", time.Minute)
	require.Error(t, err)
}

func TestIssueAndDecodeRoundTrip(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue(aliceUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := codec.DecodeUsername(token)
	require.NoError(t, err)
	require.Equal(t, "alice", username)
}

func TestIssueNilUserIsNoOp(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue(nil)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestDecodeRejectsZeroLifetimeToken(t *testing.T) {
	codec := newCodec(t, 0)

	token, err := codec.Issue(aliceUser())
	require.NoError(t, err)

	_, err = codec.DecodeUsername(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	codec := newCodec(t, -time.Minute)

	token, err := codec.Issue(aliceUser())
	require.NoError(t, err)

	_, err = codec.DecodeUsername(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeRejectsWrongKey(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue(aliceUser())
	require.NoError(t, err)

	other, err := auth.NewTokenCodec("a-different-key", "HS256", time.Hour)
	require.NoError(t, err)

	_, err = other.DecodeUsername(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeRejectsWrongAlgorithm(t *testing.T) {
	hs384, err := auth.NewTokenCodec(testSecret, "HS384", time.Hour)
	require.NoError(t, err)

	token, err := hs384.Issue(aliceUser())
	require.NoError(t, err)

	codec := newCodec(t, time.Hour)
	_, err = codec.DecodeUsername(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue(aliceUser())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip a character in the payload so the signature no longer matches.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.DecodeUsername(tampered)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeRejectsMissingIdentityClaims(t *testing.T) {
	codec := newCodec(t, time.Hour)

	// Correctly signed, but carries no email/username claims. A malformed
	// claim set must be indistinguishable from a tampered token.
	now := time.Now().UTC()
	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    auth.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := bare.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = codec.DecodeUsername(signed)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeRejectsMalformedToken(t *testing.T) {
	codec := newCodec(t, time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := codec.DecodeUsername(tokenString)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	}
}
