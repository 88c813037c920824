package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yllada/ocmgr/common"
)

// Profile is a named connection preset. It carries everything a connect
// invocation needs except the password, which lives in the keyring or is
// prompted for.
type Profile struct {
	// ID is a unique identifier for the profile.
	ID string `yaml:"id"`
	// Name is the human-readable name used on the command line.
	Name string `yaml:"name"`
	// Server is the VPN server hostname or URL.
	Server string `yaml:"server"`
	// Username is the optional VPN username.
	Username string `yaml:"username,omitempty"`
	// Authgroup is the optional auth group/realm the server asks for.
	Authgroup string `yaml:"authgroup,omitempty"`
	// Interface is the TUN interface name; empty means the default.
	Interface string `yaml:"interface,omitempty"`
	// ServerCert pins the server certificate (e.g. "pin-sha256:...").
	ServerCert string `yaml:"servercert,omitempty"`
	// NoDTLS forces TLS/TCP by disabling DTLS/UDP.
	NoDTLS bool `yaml:"no_dtls,omitempty"`
	// SavePassword stores the password in the keyring after first use.
	SavePassword bool `yaml:"save_password"`
	// Created is when the profile was added.
	Created time.Time `yaml:"created"`
	// LastUsed is when the profile last initiated a connection.
	LastUsed time.Time `yaml:"last_used,omitempty"`
}

// Validate checks that the profile has the required fields.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrInvalidProfile)
	}
	if p.Server == "" {
		return fmt.Errorf("%w: server is required", common.ErrInvalidProfile)
	}
	return nil
}

// ProfileStore persists profiles as YAML at a single path.
type ProfileStore struct {
	profiles []*Profile
	path     string
}

// NewProfileStore loads profiles from the given file. A missing file means
// no profiles yet, not an error.
func NewProfileStore(path string) (*ProfileStore, error) {
	ps := &ProfileStore{path: path}
	if err := ps.load(); err != nil {
		return nil, err
	}
	return ps, nil
}

// DefaultProfilePath returns the profiles file path under the user's
// config directory.
func DefaultProfilePath() (string, error) {
	configDir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, common.ProfilesFileName), nil
}

func (ps *ProfileStore) load() error {
	data, err := os.ReadFile(ps.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read profiles file: %w", err)
	}
	if err := yaml.Unmarshal(data, &ps.profiles); err != nil {
		return fmt.Errorf("failed to parse profiles file: %w", err)
	}
	return nil
}

// Save persists all profiles.
func (ps *ProfileStore) Save() error {
	data, err := yaml.Marshal(ps.profiles)
	if err != nil {
		return fmt.Errorf("failed to serialize profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(ps.path), 0700); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}
	if err := os.WriteFile(ps.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}
	return nil
}

// Add validates and stores a new profile, assigning an ID and creation
// timestamp. Names must be unique.
func (ps *ProfileStore) Add(profile *Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	for _, p := range ps.profiles {
		if p.Name == profile.Name {
			return fmt.Errorf("%w: %s", common.ErrDuplicateName, profile.Name)
		}
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.Created = time.Now()
	ps.profiles = append(ps.profiles, profile)
	return ps.Save()
}

// Remove deletes a profile by name.
func (ps *ProfileStore) Remove(name string) error {
	for i, p := range ps.profiles {
		if p.Name == name {
			ps.profiles = append(ps.profiles[:i], ps.profiles[i+1:]...)
			return ps.Save()
		}
	}
	return fmt.Errorf("%w: %s", common.ErrProfileNotFound, name)
}

// GetByName retrieves a profile by name.
func (ps *ProfileStore) GetByName(name string) (*Profile, error) {
	for _, p := range ps.profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", common.ErrProfileNotFound, name)
}

// List returns all profiles.
func (ps *ProfileStore) List() []*Profile {
	return ps.profiles
}

// MarkUsed updates the LastUsed timestamp for a profile.
func (ps *ProfileStore) MarkUsed(name string) error {
	profile, err := ps.GetByName(name)
	if err != nil {
		return err
	}
	profile.LastUsed = time.Now()
	return ps.Save()
}
