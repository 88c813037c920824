package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yllada/ocmgr/common"
)

// CredentialSource supplies the username and password for a connection.
// Separating credential acquisition from the connect algorithm lets tests
// supply fixed credentials without simulating a terminal. The password is
// never accepted as a command-line argument to avoid process-list leakage.
type CredentialSource interface {
	Username() (string, error)
	Password() (string, error)
}

// StaticSource returns fixed credentials. Used for tests and for values
// resolved ahead of time (e.g. from a profile).
type StaticSource struct {
	User string
	Pass string
}

func (s StaticSource) Username() (string, error) { return s.User, nil }
func (s StaticSource) Password() (string, error) { return s.Pass, nil }

// TerminalSource prompts interactively: the username via a plain prompt,
// the password via a masked terminal read. A preset User skips the
// username prompt. When In is not a terminal (piped input, tests) the
// password falls back to a plain line read, since masking needs a tty.
type TerminalSource struct {
	User string
	In   io.Reader
	Out  io.Writer

	reader *bufio.Reader
}

func (t *TerminalSource) output() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stdout
}

// readLine reads one line from In, sharing a single buffered reader so a
// username read never swallows the password line behind it.
func (t *TerminalSource) readLine() (string, error) {
	if t.reader == nil {
		in := t.In
		if in == nil {
			in = os.Stdin
		}
		t.reader = bufio.NewReader(in)
	}
	return t.reader.ReadString('\n')
}

// maskedFd returns the descriptor for a masked password read, or -1 when
// the input is not a terminal.
func (t *TerminalSource) maskedFd() int {
	if t.In == nil {
		return int(os.Stdin.Fd())
	}
	if f, ok := t.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return int(f.Fd())
	}
	return -1
}

func (t *TerminalSource) Username() (string, error) {
	if t.User != "" {
		return t.User, nil
	}

	fmt.Fprint(t.output(), "Username: ")
	line, err := t.readLine()
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	username := strings.TrimSpace(line)
	if username == "" {
		return "", errors.New("username cannot be empty")
	}
	t.User = username
	return username, nil
}

func (t *TerminalSource) Password() (string, error) {
	out := t.output()
	fmt.Fprint(out, "Password: ")

	if fd := t.maskedFd(); fd >= 0 {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := t.readLine()
	fmt.Fprintln(out)
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Vault abstracts stored-password lookup so credential sources don't
// depend on a concrete keyring implementation.
type Vault interface {
	Get(key string) (string, error)
	Store(key, password string) error
}

// VaultSource looks a password up in a Vault before falling back to
// another source. With Save set, a freshly prompted password is stored
// under Key for later invocations. Username resolution always delegates
// to the fallback.
type VaultSource struct {
	Key      string
	Fallback CredentialSource
	Vault    Vault
	Save     bool
}

func (v *VaultSource) Username() (string, error) {
	return v.Fallback.Username()
}

func (v *VaultSource) Password() (string, error) {
	if password, err := v.Vault.Get(v.Key); err == nil && password != "" {
		common.LogDebug("using stored password for %s", v.Key)
		return password, nil
	}

	password, err := v.Fallback.Password()
	if err != nil {
		return "", err
	}
	if v.Save && password != "" {
		if err := v.Vault.Store(v.Key, password); err != nil {
			common.LogWarn("could not store password for %s: %v", v.Key, err)
		}
	}
	return password, nil
}
