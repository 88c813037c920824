package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/ocmgr/common"
)

func TestLocateExplicitPath(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "openconnect")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\n"), 0755))

	path, err := Locate(binary)
	require.NoError(t, err)
	assert.Equal(t, binary, path)
}

func TestLocateExplicitPathMissing(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, common.ErrBinaryNotFound)
}

func TestLocateExplicitPathIsDirectory(t *testing.T) {
	_, err := Locate(t.TempDir())
	require.ErrorIs(t, err, common.ErrBinaryNotFound)
}

func TestLocateSearchesPath(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, common.BinaryName)
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\n"), 0755))
	t.Setenv("PATH", dir)

	path, err := Locate("")
	require.NoError(t, err)
	assert.Equal(t, binary, path)
}

func TestLocateNotOnPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Locate("")
	require.ErrorIs(t, err, common.ErrBinaryNotFound)
}
