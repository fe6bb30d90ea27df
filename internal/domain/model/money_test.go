package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineAmount(t *testing.T) {
	v, ok := LineAmount(100, 3)
	assert.True(t, ok)
	assert.Equal(t, int64(300), v)

	v, ok = LineAmount(0, math.MaxInt64)
	assert.True(t, ok)
	assert.Equal(t, int64(0), v)

	_, ok = LineAmount(100, math.MaxInt64/100+1)
	assert.False(t, ok)

	_, ok = LineAmount(-1, 1)
	assert.False(t, ok)
}

func TestAddAmount(t *testing.T) {
	v, ok := AddAmount(200, 30)
	assert.True(t, ok)
	assert.Equal(t, int64(230), v)

	_, ok = AddAmount(math.MaxInt64, 1)
	assert.False(t, ok)

	_, ok = AddAmount(math.MinInt64, -1)
	assert.False(t, ok)
}
