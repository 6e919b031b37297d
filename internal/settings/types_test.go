package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	assert.Equal(t, TypeBoolean, ParseType("boolean"))
	assert.Equal(t, TypeNumber, ParseType("number"))
	assert.Equal(t, TypeJSON, ParseType("json"))
	assert.Equal(t, TypeString, ParseType("string"))
	assert.Equal(t, TypeString, ParseType(""))
	assert.Equal(t, TypeString, ParseType("garbage"))
}

func TestCoerceBoolean(t *testing.T) {
	for _, raw := range []interface{}{true, "true", "1", float64(1), 1} {
		stored, decoded, err := Coerce(TypeBoolean, raw)
		require.NoError(t, err)
		assert.Equal(t, "true", stored, "raw %v", raw)
		assert.Equal(t, true, decoded)
	}
	for _, raw := range []interface{}{false, "false", "yes", "0", float64(0), nil, "TRUE"} {
		stored, decoded, err := Coerce(TypeBoolean, raw)
		require.NoError(t, err)
		assert.Equal(t, "false", stored, "raw %v", raw)
		assert.Equal(t, false, decoded)
	}
}

func TestCoerceNumber(t *testing.T) {
	stored, decoded, err := Coerce(TypeNumber, float64(25))
	require.NoError(t, err)
	assert.Equal(t, "25", stored)
	assert.Equal(t, float64(25), decoded)

	stored, decoded, err = Coerce(TypeNumber, "3.5")
	require.NoError(t, err)
	assert.Equal(t, "3.5", stored)
	assert.Equal(t, 3.5, decoded)

	_, _, err = Coerce(TypeNumber, "not a number")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, _, err = Coerce(TypeNumber, true)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestCoerceJSON(t *testing.T) {
	stored, decoded, err := Coerce(TypeJSON, []interface{}{"a", "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, stored)
	assert.Equal(t, []interface{}{"a", "b"}, decoded)

	// A string input is assumed to be serialized JSON already.
	stored, decoded, err = Coerce(TypeJSON, `{"k":1}`)
	require.NoError(t, err)
	assert.Equal(t, `{"k":1}`, stored)
	assert.Equal(t, map[string]interface{}{"k": float64(1)}, decoded)
}

func TestCoerceString(t *testing.T) {
	stored, decoded, err := Coerce(TypeString, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", stored)
	assert.Equal(t, "hello", decoded)

	stored, _, err = Coerce(TypeString, 42)
	require.NoError(t, err)
	assert.Equal(t, "42", stored)
}

func TestDecodeNeverFails(t *testing.T) {
	assert.Equal(t, true, Decode(TypeBoolean, "true"))
	assert.Equal(t, true, Decode(TypeBoolean, "1"))
	assert.Equal(t, false, Decode(TypeBoolean, "garbage"))

	assert.Equal(t, float64(20), Decode(TypeNumber, "20"))
	// Unparseable values degrade to the raw string.
	assert.Equal(t, "oops", Decode(TypeNumber, "oops"))

	assert.Equal(t, []interface{}{"x"}, Decode(TypeJSON, `["x"]`))
	assert.Equal(t, "{broken", Decode(TypeJSON, "{broken"))

	assert.Equal(t, "plain", Decode(TypeString, "plain"))
}

func TestCoerceDecodeRoundTrip(t *testing.T) {
	stored, decoded, err := Coerce(TypeNumber, 7)
	require.NoError(t, err)
	assert.Equal(t, decoded, Decode(TypeNumber, stored))

	stored, decoded, err = Coerce(TypeBoolean, "1")
	require.NoError(t, err)
	assert.Equal(t, decoded, Decode(TypeBoolean, stored))
}
