package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsSensitiveKeys(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/bookings/:id"),
		attribute.String("user.email", "a@b.c"),
		attribute.String("auth.token", "xyz"),
	)
	assert.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeError(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	plain := errors.New("booking not found")
	assert.Equal(t, plain, SafeError(plain))
	assert.EqualError(t, SafeError(errors.New("invalid password for user")), "redacted error")
}

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, nil)
	assert.NoError(t, err)
	assert.NotNil(t, provider)
}
