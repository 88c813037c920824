package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempPIDFile(t *testing.T) PIDFile {
	t.Helper()
	return NewPIDFile(filepath.Join(t.TempDir(), "ocmgr.pid"))
}

func TestPIDFileReadAbsent(t *testing.T) {
	tests := []struct {
		name    string
		content *string // nil means no file
	}{
		{"missing file", nil},
		{"empty file", strptr("")},
		{"whitespace only", strptr("  \n")},
		{"non-numeric", strptr("not-a-pid")},
		{"negative", strptr("-5")},
		{"zero", strptr("0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := tempPIDFile(t)
			if tt.content != nil {
				require.NoError(t, os.WriteFile(pf.Path(), []byte(*tt.content), 0644))
			}
			pid, ok := pf.Read()
			require.False(t, ok)
			require.Zero(t, pid)
		})
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	pf := tempPIDFile(t)

	require.NoError(t, pf.Write(12345))

	pid, ok := pf.Read()
	require.True(t, ok)
	require.Equal(t, 12345, pid)

	// Write replaces prior contents.
	require.NoError(t, pf.Write(67))
	pid, ok = pf.Read()
	require.True(t, ok)
	require.Equal(t, 67, pid)
}

func TestPIDFileReadTrimsWhitespace(t *testing.T) {
	pf := tempPIDFile(t)
	require.NoError(t, os.WriteFile(pf.Path(), []byte("  4321\n"), 0644))

	pid, ok := pf.Read()
	require.True(t, ok)
	require.Equal(t, 4321, pid)
}

func TestPIDFileWriteCreatesParentDir(t *testing.T) {
	pf := NewPIDFile(filepath.Join(t.TempDir(), "nested", "dir", "ocmgr.pid"))

	require.NoError(t, pf.Write(99))

	pid, ok := pf.Read()
	require.True(t, ok)
	require.Equal(t, 99, pid)
}

func TestPIDFileRemoveIdempotent(t *testing.T) {
	pf := tempPIDFile(t)

	// Removing an absent file is not an error.
	require.NoError(t, pf.Remove())

	require.NoError(t, pf.Write(1))
	require.NoError(t, pf.Remove())
	require.NoError(t, pf.Remove())

	_, ok := pf.Read()
	require.False(t, ok)
}

func strptr(s string) *string { return &s }
