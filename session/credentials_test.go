package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVault struct {
	entries map[string]string
	stored  map[string]string
}

func newFakeVault() *fakeVault {
	return &fakeVault{entries: map[string]string{}, stored: map[string]string{}}
}

func (f *fakeVault) Get(key string) (string, error) {
	if pw, ok := f.entries[key]; ok {
		return pw, nil
	}
	return "", errors.New("credential not found")
}

func (f *fakeVault) Store(key, password string) error {
	f.stored[key] = password
	return nil
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{User: "alice", Pass: "pw"}

	user, err := src.Username()
	require.NoError(t, err)
	assert.Equal(t, "alice", user)

	pass, err := src.Password()
	require.NoError(t, err)
	assert.Equal(t, "pw", pass)
}

func TestTerminalSourceUsername(t *testing.T) {
	var out bytes.Buffer
	src := &TerminalSource{In: strings.NewReader("  alice \n"), Out: &out}

	user, err := src.Username()
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	assert.Contains(t, out.String(), "Username: ")

	// The answer is cached; a drained reader must not be consulted again.
	user, err = src.Username()
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
}

func TestTerminalSourcePresetUsernameSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	src := &TerminalSource{User: "preset", In: strings.NewReader(""), Out: &out}

	user, err := src.Username()
	require.NoError(t, err)
	assert.Equal(t, "preset", user)
	assert.Empty(t, out.String())
}

func TestTerminalSourcePasswordFromPipedInput(t *testing.T) {
	var out bytes.Buffer
	src := &TerminalSource{In: strings.NewReader("s3cret\n"), Out: &out}

	pass, err := src.Password()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pass)
	assert.Contains(t, out.String(), "Password: ")
}

func TestTerminalSourceUsernameThenPassword(t *testing.T) {
	// Both answers arrive on one piped reader; the username read must not
	// swallow the password line.
	src := &TerminalSource{In: strings.NewReader("alice\ns3cret\n"), Out: &bytes.Buffer{}}

	user, err := src.Username()
	require.NoError(t, err)
	assert.Equal(t, "alice", user)

	pass, err := src.Password()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pass)
}

func TestTerminalSourceEmptyUsername(t *testing.T) {
	src := &TerminalSource{In: strings.NewReader("\n"), Out: &bytes.Buffer{}}

	_, err := src.Username()
	require.Error(t, err)
}

func TestVaultSourceUsesStoredPassword(t *testing.T) {
	vault := newFakeVault()
	vault.entries["vpn.example.com"] = "stored-pw"
	src := &VaultSource{
		Key:      "vpn.example.com",
		Fallback: StaticSource{User: "alice", Pass: "prompted-pw"},
		Vault:    vault,
	}

	pass, err := src.Password()
	require.NoError(t, err)
	assert.Equal(t, "stored-pw", pass)
}

func TestVaultSourceFallsBackAndSaves(t *testing.T) {
	vault := newFakeVault()
	src := &VaultSource{
		Key:      "vpn.example.com",
		Fallback: StaticSource{User: "alice", Pass: "prompted-pw"},
		Vault:    vault,
		Save:     true,
	}

	pass, err := src.Password()
	require.NoError(t, err)
	assert.Equal(t, "prompted-pw", pass)
	assert.Equal(t, "prompted-pw", vault.stored["vpn.example.com"])
}

func TestVaultSourceFallsBackWithoutSaving(t *testing.T) {
	vault := newFakeVault()
	src := &VaultSource{
		Key:      "vpn.example.com",
		Fallback: StaticSource{User: "alice", Pass: "prompted-pw"},
		Vault:    vault,
	}

	pass, err := src.Password()
	require.NoError(t, err)
	assert.Equal(t, "prompted-pw", pass)
	assert.Empty(t, vault.stored)
}

func TestVaultSourceUsernameDelegates(t *testing.T) {
	src := &VaultSource{
		Key:      "vpn.example.com",
		Fallback: StaticSource{User: "alice"},
		Vault:    newFakeVault(),
	}

	user, err := src.Username()
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
}
