package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A near-zero refill rate keeps token counts deterministic within a test.
const trickleRate = 0.0001

func TestAllowExhaustsBurst(t *testing.T) {
	l := NewTokenBucketLimiter(trickleRate, 2, 0)
	defer l.Stop()

	allowed, _ := l.Allow("client-a")
	assert.True(t, allowed)
	allowed, _ = l.Allow("client-a")
	assert.True(t, allowed)

	allowed, info := l.Allow("client-a")
	assert.False(t, allowed)
	assert.Equal(t, 2, info.Limit)
	assert.Zero(t, info.Remaining)
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := NewTokenBucketLimiter(trickleRate, 1, 0)
	defer l.Stop()

	allowed, _ := l.Allow("client-a")
	require.True(t, allowed)
	allowed, _ = l.Allow("client-a")
	require.False(t, allowed)

	allowed, _ = l.Allow("client-b")
	assert.True(t, allowed, "one exhausted client must not limit another")
}

func TestSetLimitsAppliesToNewBuckets(t *testing.T) {
	l := NewTokenBucketLimiter(trickleRate, 1, 0)
	defer l.Stop()

	l.SetLimits(trickleRate, 3)

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("fresh-client")
		require.True(t, allowed, "request %d within the raised burst", i+1)
		assert.Equal(t, 3, info.Limit)
	}
	allowed, _ := l.Allow("fresh-client")
	assert.False(t, allowed)
}

func TestSetLimitsRetunesExistingBuckets(t *testing.T) {
	l := NewTokenBucketLimiter(trickleRate, 5, 0)
	defer l.Stop()

	allowed, info := l.Allow("client-a")
	require.True(t, allowed)
	require.Equal(t, 5, info.Limit)

	l.SetLimits(trickleRate, 2)

	// The existing bucket keeps its tokens but reports the new capacity.
	allowed, info = l.Allow("client-a")
	assert.True(t, allowed)
	assert.Equal(t, 2, info.Limit)
}

func TestSetLimitsIgnoresNonPositiveValues(t *testing.T) {
	l := NewTokenBucketLimiter(trickleRate, 4, 0)
	defer l.Stop()

	l.SetLimits(0, 10)
	l.SetLimits(1, 0)
	l.SetLimits(-1, -1)

	_, info := l.Allow("client-a")
	assert.Equal(t, 4, info.Limit)
}

//Personal.AI order the ending
