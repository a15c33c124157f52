package util

import (
	"testing"
	"time"

	"github.com/rohnedwards/completor/types"
	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	value, err := Coerce("plain", types.String, nil)
	assert.Nil(t, err)
	assert.Equal(t, "plain", value)

	value, err = Coerce("42", types.Int, nil)
	assert.Nil(t, err)
	assert.Equal(t, int64(42), value)

	value, err = Coerce("2.5", types.Float, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2.5, value)

	value, err = Coerce("true", types.Bool, nil)
	assert.Nil(t, err)
	assert.Equal(t, true, value)

	value, err = Coerce("1h30m", types.Duration, nil)
	assert.Nil(t, err)
	assert.Equal(t, 90*time.Minute, value)
}

func TestCoerce_Time(t *testing.T) {
	value, err := Coerce("2016-04-05", types.Time, nil)
	assert.Nil(t, err)
	parsed, ok := value.(time.Time)
	assert.True(t, ok)
	assert.Equal(t, 2016, parsed.Year())
	assert.Equal(t, time.April, parsed.Month())
}

func TestCoerce_List(t *testing.T) {
	value, err := Coerce("a,b|c d", types.List, nil)
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, value)

	value, err = Coerce("a;b", types.List, func(r rune) bool { return r == ';' })
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b"}, value)
}

func TestCoerce_Failure(t *testing.T) {
	_, err := Coerce("wide", types.Int, nil)
	assert.NotNil(t, err)

	_, err = Coerce("maybe", types.Bool, nil)
	assert.NotNil(t, err)
}
