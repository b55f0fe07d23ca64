package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestAuthenticator(t *testing.T, now func() time.Time) *JWTAuthenticator {
	t.Helper()

	a, err := NewJWTAuthenticator(TokenConfig{
		Secret: "super-secret",
		TTL:    30 * time.Minute,
		Now:    now,
	})
	require.NoError(t, err)

	return a
}

func TestNewJWTAuthenticator_MissingSecret(t *testing.T) {
	_, err := NewJWTAuthenticator(TokenConfig{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, func() time.Time { return fixedNow })

	for _, subject := range []string{"a@x.com", "User@Example.COM", "ünïcode@x.com"} {
		tok, err := a.Issue(subject)
		require.NoError(t, err)

		got, err := a.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, subject, got)
	}
}

func TestIssue_Claims(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, func() time.Time { return fixedNow })

	tok, err := a.Issue("a@x.com")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, fixedNow.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, fixedNow.Unix(), claims.IssuedAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestIssue_DefaultTTL(t *testing.T) {
	a, err := NewJWTAuthenticator(TokenConfig{
		Secret: "k",
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultAccessTokenTTL, a.TTL())

	tok, err := a.Issue("a@x.com")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestIssue_EmptySubject(t *testing.T) {
	a := newTestAuthenticator(t, nil)

	_, err := a.Issue("")
	assert.ErrorIs(t, err, ErrInvalidSubject)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	now := fixedNow
	a := newTestAuthenticator(t, func() time.Time { return now })

	tok, err := a.Issue("a@x.com")
	require.NoError(t, err)

	now = fixedNow.Add(31 * time.Minute)

	_, err = a.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_ExpiredButValidlySigned(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, func() time.Time { return fixedNow })

	tok, err := a.GenerateToken(jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(-time.Second)),
	})
	require.NoError(t, err)

	_, err = a.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, nil)
	other, err := NewJWTAuthenticator(TokenConfig{Secret: "another-secret"})
	require.NoError(t, err)

	tok, err := other.Issue("a@x.com")
	require.NoError(t, err)

	_, err = a.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingSubject(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, func() time.Time { return fixedNow })

	tok, err := a.GenerateToken(jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Minute)),
	})
	require.NoError(t, err)

	_, err = a.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingExpiry(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, func() time.Time { return fixedNow })

	tok, err := a.GenerateToken(jwt.RegisteredClaims{Subject: "a@x.com"})
	require.NoError(t, err)

	_, err = a.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, func() time.Time { return fixedNow })

	claims := jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Minute)),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = a.Verify(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = a.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, nil)

	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b", "....."} {
		_, err := a.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestVerify_IssuerMismatch(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTAuthenticator(TokenConfig{Secret: "k", Issuer: "someone-else"})
	require.NoError(t, err)
	verifier, err := NewJWTAuthenticator(TokenConfig{Secret: "k", Issuer: "account-service"})
	require.NoError(t, err)

	tok, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// Every character except the last one of each segment carries six
// significant bits, so replacing it always changes the decoded bytes.
func TestVerify_SingleByteMutation(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, func() time.Time { return fixedNow })

	tok, err := a.Issue("a@x.com")
	require.NoError(t, err)

	segments := strings.Split(tok, ".")
	require.Len(t, segments, 3)

	offset := 0
	for _, seg := range segments {
		for i := 0; i < len(seg)-1; i++ {
			pos := offset + i
			replacement := byte('A')
			if tok[pos] == 'A' {
				replacement = 'B'
			}

			mutated := tok[:pos] + string(replacement) + tok[pos+1:]

			_, err := a.Verify(mutated)
			assert.Error(t, err, "mutation at %d should be rejected", pos)
		}
		offset += len(seg) + 1
	}
}
