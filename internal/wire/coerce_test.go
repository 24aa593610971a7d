package wire_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pmsbridge/internal/wire"
)

func TestInt(t *testing.T) {
	n := map[string]any{
		"s":     "42",
		"f":     41.9,
		"float": "3.0",
		"bad":   "n/a",
	}
	assert.Equal(t, 42, wire.Int(n, "s", 0))
	assert.Equal(t, 41, wire.Int(n, "f", 0))
	assert.Equal(t, 3, wire.Int(n, "float", 0))
	assert.Equal(t, 7, wire.Int(n, "bad", 7))
	assert.Equal(t, 0, wire.Int(n, "absent", 0))
}

func TestFloat(t *testing.T) {
	n := map[string]any{
		"plain": "15.4",
		"comma": "15,4",
		"num":   15.4,
		"zero":  "0",
	}
	assert.Equal(t, 15.4, wire.Float(n, "plain", 0))
	assert.Equal(t, 15.4, wire.Float(n, "comma", 0))
	assert.Equal(t, 15.4, wire.Float(n, "num", 0))
	assert.Equal(t, 0.0, wire.Float(n, "zero", 9))
	assert.Equal(t, 0.0, wire.Float(n, "absent", 0))
}

func TestBool_NumericTruthy(t *testing.T) {
	n := map[string]any{
		"one":  "1",
		"two":  "2", // vendor sends counts where flags are expected
		"zero": "0",
		"yes":  "yes",
		"no":   "false",
		"f":    3.0,
	}
	assert.True(t, wire.Bool(n, "one", false))
	assert.True(t, wire.Bool(n, "two", false))
	assert.False(t, wire.Bool(n, "zero", true))
	assert.True(t, wire.Bool(n, "yes", false))
	assert.False(t, wire.Bool(n, "no", true))
	assert.True(t, wire.Bool(n, "f", false))
	assert.False(t, wire.Bool(n, "absent", false))
}

func TestStr_TextPrecedence(t *testing.T) {
	n := map[string]any{
		"bare": "hello",
		"rich": map[string]any{
			wire.AttrKey: map[string]any{"id": "1"},
			wire.TextKey: "Name",
		},
		"attrsOnly": map[string]any{
			wire.AttrKey: map[string]any{"id": "1"},
		},
	}
	assert.Equal(t, "hello", wire.Str(n, "bare", ""))
	assert.Equal(t, "Name", wire.Str(n, "rich", ""))
	assert.Equal(t, "fallback", wire.Str(n, "attrsOnly", "fallback"))
	assert.Nil(t, wire.OptStr(n, "attrsOnly"))
}

func TestTime_EpochFallback(t *testing.T) {
	n := map[string]any{
		"ok":  "2024-02-20 10:30:00",
		"bad": "not-a-date",
	}
	const layout = "2006-01-02 15:04:05"
	assert.Equal(t, time.Date(2024, 2, 20, 10, 30, 0, 0, time.UTC), wire.Time(n, "ok", layout, wire.Epoch))
	assert.Equal(t, wire.Epoch, wire.Time(n, "bad", layout, wire.Epoch))
	assert.Equal(t, wire.Epoch, wire.Time(n, "absent", layout, wire.Epoch))

	assert.Nil(t, wire.OptTime(n, "bad", layout))
	assert.Nil(t, wire.OptTime(n, "absent", layout))
	assert.NotNil(t, wire.OptTime(n, "ok", layout))
}

func TestMappingError(t *testing.T) {
	err := wire.MissingField("reservation", "Number")
	assert.EqualError(t, err, "map reservation: Number required")

	// wrapping keeps the innermost entity
	wrapped := wire.Mapping("reservations response", err)
	assert.EqualError(t, wrapped, "map reservation: Number required")

	assert.Nil(t, wire.Mapping("x", nil))
}
