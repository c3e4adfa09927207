package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthValueRoundTrip(t *testing.T) {
	val := encodeAuthValue(42, "secret123")

	id, ok := decodeAuthValue(val, "secret123")
	assert.True(t, ok)
	assert.Equal(t, 42, id)
}

func TestAuthValueRejectsWrongPassword(t *testing.T) {
	val := encodeAuthValue(42, "secret123")

	_, ok := decodeAuthValue(val, "other-password")
	assert.False(t, ok)
}

func TestAuthValueRejectsGarbage(t *testing.T) {
	for _, val := range []string{"", "not-a-value", "abc:def"} {
		_, ok := decodeAuthValue(val, "secret123")
		assert.False(t, ok, "value %q", val)
	}
}

// The key must depend on the email only. A password change invalidates by
// email, so an entry cached under the old password has to live under the
// same key that invalidation deletes.
func TestAuthKeyIndependentOfPassword(t *testing.T) {
	assert.Equal(t, authKey("claire@ouveo.fr"), authKey("claire@ouveo.fr"))
	assert.NotEqual(t, authKey("claire@ouveo.fr"), authKey("marc@ouveo.fr"))

	old := encodeAuthValue(7, "old-password")
	_, ok := decodeAuthValue(old, "new-password")
	assert.False(t, ok)
}
