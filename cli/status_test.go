package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStatus executes `ocmgr status` against the given PID file and returns
// the printed output and exit code.
func runStatus(t *testing.T, pidFilePath string) (string, int) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := NewRootCmd("test", "unknown", "unknown")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"status", "--pid-file", pidFilePath})

	err := root.Execute()
	if err == nil {
		return out.String(), 0
	}
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return out.String(), exitErr.Code
}

func TestStatusDisconnected(t *testing.T) {
	pidFilePath := filepath.Join(t.TempDir(), "ocmgr.pid")

	out, code := runStatus(t, pidFilePath)

	assert.Equal(t, "DISCONNECTED\n", out)
	assert.Equal(t, 1, code)
}

func TestStatusConnected(t *testing.T) {
	pidFilePath := filepath.Join(t.TempDir(), "ocmgr.pid")
	require.NoError(t, os.WriteFile(pidFilePath, []byte(strconv.Itoa(os.Getpid())), 0644))

	out, code := runStatus(t, pidFilePath)

	assert.Equal(t, fmt.Sprintf("CONNECTED pid=%d\n", os.Getpid()), out)
	assert.Equal(t, 0, code)
}

func TestStatusStale(t *testing.T) {
	// A just-reaped child gives a PID that no longer names a process.
	cmd := exec.Command("true")
	require.NoError(t, cmd.Run())
	deadPID := cmd.Process.Pid

	pidFilePath := filepath.Join(t.TempDir(), "ocmgr.pid")
	require.NoError(t, os.WriteFile(pidFilePath, []byte(strconv.Itoa(deadPID)), 0644))

	out, code := runStatus(t, pidFilePath)

	assert.Equal(t, fmt.Sprintf("STALE pid_file (pid=%d not running)\n", deadPID), out)
	assert.Equal(t, 2, code)

	// Status never mutates the PID file.
	data, err := os.ReadFile(pidFilePath)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(deadPID), string(data))
}

func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Code: 2}
	assert.Equal(t, "exit status 2", err.Error())
	assert.True(t, errors.As(error(err), new(*ExitError)))
}
