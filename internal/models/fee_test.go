package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeePolicy_UnmarshalJSON(t *testing.T) {
	t.Run("StructuredPercentage", func(t *testing.T) {
		var p FeePolicy
		err := json.Unmarshal([]byte(`{"type":"percentage","value":5,"additional_fee":25,"currency":"EUR"}`), &p)
		require.NoError(t, err)
		assert.Equal(t, FeePercentage, p.Kind)
		assert.True(t, p.Value.Equal(decimal.NewFromInt(5)))
		assert.True(t, p.AdditionalFee.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, CurrencyEUR, p.Currency)
	})

	t.Run("LegacyBareNumber", func(t *testing.T) {
		var p FeePolicy
		err := json.Unmarshal([]byte(`25.0`), &p)
		require.NoError(t, err)
		assert.Equal(t, FeeFixed, p.Kind)
		assert.True(t, p.Value.Equal(decimal.RequireFromString("25.0")))
		assert.True(t, p.AdditionalFee.IsZero())
	})

	t.Run("Null", func(t *testing.T) {
		var p FeePolicy
		err := json.Unmarshal([]byte(`null`), &p)
		require.NoError(t, err)
		assert.Equal(t, FeeFixed, p.Kind)
		assert.True(t, p.Value.IsZero())
	})

	t.Run("MissingKindDefaultsToFixed", func(t *testing.T) {
		var p FeePolicy
		err := json.Unmarshal([]byte(`{"value":50}`), &p)
		require.NoError(t, err)
		assert.Equal(t, FeeFixed, p.Kind)
		assert.Equal(t, CurrencyTRY, p.Currency)
	})

	t.Run("Garbage", func(t *testing.T) {
		var p FeePolicy
		err := json.Unmarshal([]byte(`"not a fee"`), &p)
		assert.Error(t, err)
	})
}

func TestServiceFeeTable_ForService(t *testing.T) {
	table := ServiceFeeTable{
		ServiceHotel: {Kind: FeePercentage, Value: decimal.NewFromInt(10)},
	}

	policy, ok := table.ForService(ServiceHotel)
	require.True(t, ok)
	assert.Equal(t, FeePercentage, policy.Kind)

	_, ok = table.ForService(ServiceFlight)
	assert.False(t, ok)

	var nilTable ServiceFeeTable
	_, ok = nilTable.ForService(ServiceHotel)
	assert.False(t, ok)
}

func TestServiceFeeTable_RoundTripWithLegacyEntry(t *testing.T) {
	// Mixed document as it can exist at rest: one structured entry, one
	// legacy bare number written by an old client.
	raw := []byte(`{"hotel":{"type":"percentage","value":5,"additional_fee":25,"currency":"USD"},"flight":100}`)

	var table ServiceFeeTable
	require.NoError(t, json.Unmarshal(raw, &table))

	hotel, ok := table.ForService(ServiceHotel)
	require.True(t, ok)
	assert.Equal(t, FeePercentage, hotel.Kind)

	flight, ok := table.ForService(ServiceFlight)
	require.True(t, ok)
	assert.Equal(t, FeeFixed, flight.Kind)
	assert.True(t, flight.Value.Equal(decimal.NewFromInt(100)))
}
