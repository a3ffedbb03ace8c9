package kernel_test

import (
	"strings"
	"testing"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should trim and keep all parts", func(t *testing.T) {
		a, err := kernel.NewAddress(" 12 MG Road ", "", "Bengaluru", "Karnataka", "India", "560001")

		require.NoError(t, err)
		assert.Equal(t, "12 MG Road", a.Line1())
		assert.Empty(t, a.Line2())
		assert.Equal(t, "Bengaluru", a.City())
		assert.Equal(t, "Karnataka", a.State())
		assert.Equal(t, "India", a.Country())
		assert.Equal(t, "560001", a.PostalCode())
		assert.NoError(t, a.Validate())
	})

	t.Run("should require mandatory parts", func(t *testing.T) {
		_, err := kernel.NewAddress("", "", "", "Karnataka", "India", "560001")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "line1")
		assert.Contains(t, err.Error(), "city")
	})

	t.Run("should reject too long parts", func(t *testing.T) {
		_, err := kernel.NewAddress(strings.Repeat("a", 257), "", "Bengaluru", "Karnataka", "India",
			strings.Repeat("1", 33))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "line1")
		assert.Contains(t, err.Error(), "postalCode")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var a kernel.Address

		assert.ErrorIs(t, a.Validate(), kernel.ErrAddressIsNotConstructed)
	})
}
