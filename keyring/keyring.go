// Package keyring provides secure password storage for VPN servers.
// It uses the system keyring when available, falling back to an encrypted
// local file when not (headless servers rarely run a secret service).
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	zkeyring "github.com/zalando/go-keyring"
	"golang.org/x/crypto/pbkdf2"

	"github.com/yllada/ocmgr/common"
)

const (
	// serviceName is the identifier used in the system keyring.
	serviceName = "ocmgr"
	// kdfIterations is the pbkdf2 iteration count for the fallback key.
	kdfIterations = 4096
)

// ErrNotFound is returned when no password is stored for a key.
var ErrNotFound = errors.New("credential not found")

// Vault stores passwords keyed by server name. It satisfies the
// session.Vault interface.
type Vault struct {
	mu        sync.RWMutex
	useLocal  bool
	localPath string
	localKey  []byte
	local     map[string]string
}

// NewVault probes the system keyring and picks a backend: the keyring
// itself, or the encrypted fallback file under the config directory.
func NewVault() *Vault {
	v := &Vault{}

	probe := serviceName + "-probe"
	if err := zkeyring.Set(serviceName, probe, "probe"); err == nil {
		zkeyring.Delete(serviceName, probe)
		return v
	}

	v.useLocal = true
	v.initLocal()
	return v
}

func (v *Vault) initLocal() {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", common.ConfigDirName)
	os.MkdirAll(configDir, 0700)
	v.localPath = filepath.Join(configDir, common.CredentialsFileName)

	// Key derived from machine-specific data so the file is only usable
	// on the host that wrote it.
	hostname, _ := os.Hostname()
	secret := fmt.Sprintf("%s-%s-%d", serviceName, hostname, os.Getuid())
	v.localKey = pbkdf2.Key([]byte(secret), []byte(machineID()), kdfIterations, 32, sha256.New)

	v.local = make(map[string]string)
	v.loadLocal()
}

func machineID() string {
	data, err := os.ReadFile("/etc/machine-id")
	if err == nil {
		return strings.TrimSpace(string(data))
	}
	return "default-machine-id"
}

func (v *Vault) loadLocal() {
	data, err := os.ReadFile(v.localPath)
	if err != nil {
		return
	}
	decrypted, err := v.decrypt(data)
	if err != nil {
		return
	}
	json.Unmarshal(decrypted, &v.local)
}

func (v *Vault) saveLocal() error {
	v.mu.RLock()
	data, err := json.Marshal(v.local)
	v.mu.RUnlock()
	if err != nil {
		return err
	}

	encrypted, err := v.encrypt(data)
	if err != nil {
		return err
	}
	return os.WriteFile(v.localPath, encrypted, 0600)
}

func (v *Vault) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(v.localKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func (v *Vault) decrypt(data []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(v.localKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// Store saves a password under the given key (typically the server name).
func (v *Vault) Store(key, password string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if v.useLocal {
		v.mu.Lock()
		v.local[key] = password
		v.mu.Unlock()
		return v.saveLocal()
	}

	if err := zkeyring.Set(serviceName, key, password); err != nil {
		// Keyring went away mid-run; fall back to the local file.
		v.useLocal = true
		v.initLocal()
		v.mu.Lock()
		v.local[key] = password
		v.mu.Unlock()
		return v.saveLocal()
	}
	return nil
}

// Get retrieves a stored password. Returns ErrNotFound when absent.
func (v *Vault) Get(key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}

	if v.useLocal {
		v.mu.RLock()
		password, exists := v.local[key]
		v.mu.RUnlock()
		if !exists {
			return "", ErrNotFound
		}
		return password, nil
	}

	password, err := zkeyring.Get(serviceName, key)
	if err != nil {
		return "", ErrNotFound
	}
	return password, nil
}

// Delete removes a stored password. Deleting an absent entry is not an error.
func (v *Vault) Delete(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if v.useLocal {
		v.mu.Lock()
		delete(v.local, key)
		v.mu.Unlock()
		return v.saveLocal()
	}

	zkeyring.Delete(serviceName, key)
	return nil
}
