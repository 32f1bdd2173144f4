package token

import (
	"testing"
	"time"

	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer(secret string) (*Issuer, *clock.FakeClock) {
	clk := clock.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	return NewIssuer(config.Config{AuthJWTSecret: secret, AuthTokenTTL: 7 * 24 * time.Hour}, clk), clk
}

func TestIssueAndParse(t *testing.T) {
	issuer, clk := newIssuer("secret")

	raw, expiresAt, err := issuer.Issue("42", "admin@hotel.test", "admin")
	require.NoError(t, err)
	assert.Equal(t, clk.Now().Add(7*24*time.Hour), expiresAt)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "admin@hotel.test", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseExpired(t *testing.T) {
	issuer, clk := newIssuer("secret")
	raw, _, err := issuer.Issue("42", "a@b.test", "manager")
	require.NoError(t, err)

	clk.Advance(8 * 24 * time.Hour)
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issuer, _ := newIssuer("secret")
	other, _ := newIssuer("other-secret")

	raw, _, err := other.Issue("42", "a@b.test", "admin")
	require.NoError(t, err)
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = issuer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalid)
}
