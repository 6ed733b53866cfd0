package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryInvalidator(t *testing.T) {
	c := NewInMemoryInvalidator()

	c.Set("sales:t1", []byte("page1"))
	c.Set("products:t1", []byte("page1"))

	value, ok := c.Get("sales:t1")
	assert.True(t, ok)
	assert.Equal(t, []byte("page1"), value)

	err := c.Invalidate(context.Background(), "sales:t1", "missing-key")
	assert.NoError(t, err)

	_, ok = c.Get("sales:t1")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestInMemoryInvalidator_NoKeys(t *testing.T) {
	c := NewInMemoryInvalidator()
	assert.NoError(t, c.Invalidate(context.Background()))
}
