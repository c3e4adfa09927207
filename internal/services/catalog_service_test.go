package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidWeekday(t *testing.T) {
	for _, day := range frenchWeekdays {
		assert.True(t, validWeekday(day), day)
	}
	assert.True(t, validWeekday("Lundi"))
	assert.False(t, validWeekday("monday"))
	assert.False(t, validWeekday(""))
}

// Writes invalidate both the unfiltered listing and the category listing,
// so the keys for those two views must line up with what a read uses.
func TestCatalogListKey(t *testing.T) {
	assert.Equal(t, "catalog:list:all", catalogListKey(""))
	assert.Equal(t, "catalog:list:plomberie", catalogListKey("plomberie"))
	assert.NotEqual(t, catalogListKey("plomberie"), catalogListKey("menuiserie"))
}
