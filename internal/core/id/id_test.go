package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_GeneratesV7(t *testing.T) {
	v := New()
	assert.Equal(t, uuid.Version(7), v.Version())
	assert.False(t, IsNil(v))
}

func TestParse_RoundTrip(t *testing.T) {
	v := New()

	parsed, err := Parse(v.String())
	require.NoError(t, err)
	assert.Equal(t, v, parsed)

	_, err = Parse("not-an-id")
	assert.Error(t, err)
}

func TestNil(t *testing.T) {
	assert.True(t, IsNil(Nil()))
}
