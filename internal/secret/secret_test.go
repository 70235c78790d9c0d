package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	box := New("correct horse battery staple", "salt")
	require.True(t, box.Enabled())

	sealed, err := box.Seal("smtp-password")
	require.NoError(t, err)
	assert.True(t, IsSealed(sealed))
	assert.NotContains(t, sealed, "smtp-password")

	again, err := box.Seal("smtp-password")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ")

	// sealing twice is a no-op
	same, err := box.Seal(sealed)
	require.NoError(t, err)
	assert.Equal(t, sealed, same)

	plain, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "smtp-password", plain)
}

func TestOpenPlain(t *testing.T) {
	plain, err := New("key", "").Open("not sealed")
	require.NoError(t, err)
	assert.Equal(t, "not sealed", plain)
}

func TestDisabledBox(t *testing.T) {
	box := New("", "")
	assert.False(t, box.Enabled())

	out, err := box.Seal("smtp-password")
	require.NoError(t, err)
	assert.Equal(t, "smtp-password", out)

	sealed, err := New("key", "").Seal("smtp-password")
	require.NoError(t, err)

	_, err = box.Open(sealed)
	require.ErrorIs(t, err, ErrNoKey)

	var nilBox *Box
	assert.False(t, nilBox.Enabled())
}

func TestOpenErrors(t *testing.T) {
	box := New("key", "salt")

	_, err := box.Open(Prefix + "!!!")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = box.Open(Prefix + "c2hvcnQ")
	require.ErrorIs(t, err, ErrMalformed)

	sealed, err := New("other key", "salt").Seal("smtp-password")
	require.NoError(t, err)

	_, err = box.Open(sealed)
	require.ErrorIs(t, err, ErrDecrypt)
}
