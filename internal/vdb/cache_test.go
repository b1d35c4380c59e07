//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	fl := filepath.Join(t.TempDir(), "cache.db")

	c, err := OpenCache(fl, "fakenews", "testmodel")
	require.NoError(t, err)
	defer c.Close()

	_, hit := c.Lookup("testmodel", "fakenews", "p1")
	assert.False(t, hit)

	require.NoError(t, c.Store("testmodel", "fakenews", "p1", "fake"))

	got, hit := c.Lookup("testmodel", "fakenews", "p1")
	assert.True(t, hit)
	assert.Equal(t, "fake", got)

	// the same post under another model or task is a different key
	_, hit = c.Lookup("othermodel", "fakenews", "p1")
	assert.False(t, hit)
	_, hit = c.Lookup("testmodel", "sentiment", "p1")
	assert.False(t, hit)

	// storing again replaces rather than duplicating
	require.NoError(t, c.Store("testmodel", "fakenews", "p1", "real"))
	got, _ = c.Lookup("testmodel", "fakenews", "p1")
	assert.Equal(t, "real", got)
}

func TestCacheSurvivesReopen(t *testing.T) {
	fl := filepath.Join(t.TempDir(), "cache.db")

	c1, err := OpenCache(fl, "sentiment", "testmodel")
	require.NoError(t, err)
	require.NoError(t, c1.Store("testmodel", "sentiment", "p7", "positive"))
	require.NoError(t, c1.Close())

	c2, err := OpenCache(fl, "sentiment", "testmodel")
	require.NoError(t, err)
	defer c2.Close()

	got, hit := c2.Lookup("testmodel", "sentiment", "p7")
	assert.True(t, hit)
	assert.Equal(t, "positive", got)

	// every open is a fresh run
	assert.NotEqual(t, c1.RunID, c2.RunID)
}
