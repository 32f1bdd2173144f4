package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestImageListRoundTrip(t *testing.T) {
	in := ImageList{"/uploads/a.jpg", "/uploads/b c.png"}
	v, err := in.Value()
	require.NoError(t, err)

	var out ImageList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	var empty ImageList
	require.NoError(t, empty.Scan([]byte("{}")))
	assert.Empty(t, empty)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, KindRecurring.Valid())
	assert.False(t, Kind("").Valid())
	assert.True(t, FrequencyYearly.Valid())
	assert.False(t, Frequency("hourly").Valid())
	assert.True(t, ModeBankTransfer.Valid())
	assert.False(t, Mode("crypto").Valid())
	assert.True(t, BookingPaymentRefund.Valid())
	assert.False(t, LogType("receipt").Valid())
}

func TestBookingPaymentSchemaMapsImages(t *testing.T) {
	parsed, err := schema.Parse(&BookingPayment{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := parsed.LookUpField("images")
	require.NotNil(t, field)
	assert.Equal(t, schema.DataType("text"), field.DataType)
}
