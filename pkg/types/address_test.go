package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() ShippingAddress {
	return ShippingAddress{
		Street:     "Jl. Melati No. 5",
		City:       "Bandung",
		Province:   "Jawa Barat",
		PostalCode: "40115",
		FullName:   "Dewi Lestari",
		Phone:      "081234567890",
	}
}

func TestShippingAddressValidate(t *testing.T) {
	require.NoError(t, validAddress().Validate())

	missing := validAddress()
	missing.Province = ""
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "province")

	badPhone := validAddress()
	badPhone.Phone = "not-a-phone!"
	require.Error(t, badPhone.Validate())

	shortPhone := validAddress()
	shortPhone.Phone = "0812345"
	require.Error(t, shortPhone.Validate())
}

func TestShippingAddressRoundTrip(t *testing.T) {
	addr := validAddress()
	raw, err := addr.Value()
	require.NoError(t, err)

	var decoded ShippingAddress
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, addr, decoded)
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("081234567890"))
	assert.NoError(t, ValidatePhone("+62 812-3456-789"))
	assert.Error(t, ValidatePhone(""))
	assert.Error(t, ValidatePhone("abcdefghijk"))
	assert.Error(t, ValidatePhone("0812345678901234"))
}
