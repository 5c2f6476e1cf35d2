package player

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityCreatedOnceAndReused(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrCreateIdentity(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, first.DeviceID)
	assert.Len(t, first.Code, 4)

	second, err := LoadOrCreateIdentity(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResetIdentityGeneratesNew(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrCreateIdentity(dir)
	require.NoError(t, err)

	reset, err := ResetIdentity(dir)
	require.NoError(t, err)
	assert.NotEqual(t, first.DeviceID, reset.DeviceID)

	loaded, err := LoadOrCreateIdentity(dir)
	require.NoError(t, err)
	assert.Equal(t, reset, loaded)
}

func TestCodeAlphabetExcludesAmbiguousGlyphs(t *testing.T) {
	assert.False(t, strings.ContainsAny(codeAlphabet, "0O1I"))

	for i := 0; i < 50; i++ {
		id := newIdentity()
		for _, c := range id.Code {
			assert.Contains(t, codeAlphabet, string(c))
		}
	}
}

func TestCorruptIdentityFileRegenerated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "identity.json"), []byte("not json"), 0o644))

	id, err := LoadOrCreateIdentity(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, id.DeviceID)
	assert.Len(t, id.Code, 4)
}
