package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)

	cache.Set("key", "value")
	got, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)

	_, ok = cache.Get("không-tồn-tại")
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b", "c"}, "b"))
	assert.False(t, Contains([]string{"a", "b", "c"}, "z"))
	assert.False(t, Contains([]string{}, "a"))
	assert.True(t, Contains([]int64{1, 2, 3}, 2))
}

func TestToMap(t *testing.T) {
	type sample struct {
		Name  string `bson:"name"`
		Count int64  `bson:"count"`
	}
	m, err := ToMap(sample{Name: "áo thun", Count: 3})
	require.NoError(t, err)
	assert.Equal(t, "áo thun", m["name"])
	assert.Equal(t, int64(3), m["count"])
}
