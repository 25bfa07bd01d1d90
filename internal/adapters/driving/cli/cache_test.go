package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheCmd_Stats(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	responseCache.Set("query", "model", "provider", "a cached answer body")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Entries:  1 / 1000")
	assert.Contains(t, buf.String(), "TTL:      1h0m0s")
}

func TestCacheCmd_Clear(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	responseCache.Set("query", "model", "provider", "a cached answer body")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Cache cleared")
	assert.Zero(t, responseCache.Stats().Size)
}

func TestCacheCmd_Sweep(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "sweep"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Removed 0 expired entries")
}

func TestCacheCmd_NotConfigured(t *testing.T) {
	oldCache := responseCache
	responseCache = nil
	defer func() {
		responseCache = oldCache
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"cache", "stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "response cache not configured")
}
