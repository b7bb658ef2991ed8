package catalog

import (
	"testing"

	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLagosStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(uuid.New(), "Mama Nkechi Fabrics", "Ikeja", "Lagos",
		valueobject.NewMoneyNGNFromFloat(500),
		valueobject.NewMoneyNGNFromFloat(1500),
		valueobject.NewMoneyNGNFromFloat(3000),
	)
	require.NoError(t, err)
	return s
}

func TestNewStore(t *testing.T) {
	t.Run("creates active store", func(t *testing.T) {
		s := newLagosStore(t)
		assert.True(t, s.IsActive)
		assert.Equal(t, "Ikeja", s.City)
		assert.Equal(t, "Lagos", s.State)
	})

	t.Run("rejects empty seller", func(t *testing.T) {
		_, err := NewStore(uuid.Nil, "Store", "Ikeja", "Lagos",
			valueobject.ZeroNGN(), valueobject.ZeroNGN(), valueobject.ZeroNGN())
		assert.Error(t, err)
	})

	t.Run("rejects missing location", func(t *testing.T) {
		_, err := NewStore(uuid.New(), "Store", "", "Lagos",
			valueobject.ZeroNGN(), valueobject.ZeroNGN(), valueobject.ZeroNGN())
		assert.Error(t, err)
	})

	t.Run("rejects negative fee", func(t *testing.T) {
		_, err := NewStore(uuid.New(), "Store", "Ikeja", "Lagos",
			valueobject.NewMoneyNGNFromFloat(-1), valueobject.ZeroNGN(), valueobject.ZeroNGN())
		assert.Error(t, err)
	})

	t.Run("allows free delivery tiers", func(t *testing.T) {
		s, err := NewStore(uuid.New(), "Store", "Ikeja", "Lagos",
			valueobject.ZeroNGN(), valueobject.ZeroNGN(), valueobject.ZeroNGN())
		require.NoError(t, err)
		assert.True(t, s.DeliveryWithinCity.IsZero())
	})
}

func TestStore_DeliveryFeeFor(t *testing.T) {
	s := newLagosStore(t)

	t.Run("same city and state gets within-city rate", func(t *testing.T) {
		fee := s.DeliveryFeeFor("Ikeja", "Lagos")
		assert.True(t, fee.Equals(valueobject.NewMoneyNGNFromFloat(500)))
	})

	t.Run("city match is case insensitive", func(t *testing.T) {
		fee := s.DeliveryFeeFor("IKEJA", "lagos")
		assert.True(t, fee.Equals(valueobject.NewMoneyNGNFromFloat(500)))
	})

	t.Run("different city gets outside-city rate", func(t *testing.T) {
		fee := s.DeliveryFeeFor("Lekki", "Lagos")
		assert.True(t, fee.Equals(valueobject.NewMoneyNGNFromFloat(1500)))
	})

	t.Run("different state gets outside-city rate", func(t *testing.T) {
		fee := s.DeliveryFeeFor("Ibadan", "Oyo")
		assert.True(t, fee.Equals(valueobject.NewMoneyNGNFromFloat(1500)))
	})
}
