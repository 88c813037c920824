package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/ocmgr/config"
	"github.com/yllada/ocmgr/session"
)

// seedProfile writes a profile under a temporary home so applyProfile can
// resolve it through the default profiles path.
func seedProfile(t *testing.T, profile *session.Profile) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	path, err := session.DefaultProfilePath()
	require.NoError(t, err)
	store, err := session.NewProfileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Add(profile))
}

func TestApplyProfileFillsEmptyFields(t *testing.T) {
	seedProfile(t, &session.Profile{
		Name:      "work",
		Server:    "vpn.example.com",
		Username:  "alice",
		Authgroup: "staff",
		Interface: "tun5",
		NoDTLS:    true,
	})

	cfg := session.Config{Server: "work", Username: "explicit"}
	applyProfile(&cfg, "work")

	assert.Equal(t, "vpn.example.com", cfg.Server)
	assert.Equal(t, "explicit", cfg.Username, "flag value must win over the profile")
	assert.Equal(t, "staff", cfg.Authgroup)
	assert.Equal(t, "tun5", cfg.Interface)
	assert.True(t, cfg.NoDTLS)
}

func TestApplyProfileReportsSavePassword(t *testing.T) {
	seedProfile(t, &session.Profile{
		Name:         "work",
		Server:       "vpn.example.com",
		SavePassword: true,
	})

	cfg := session.Config{Server: "work"}
	assert.True(t, applyProfile(&cfg, "work"),
		"a profile stored with save_password must opt in to keyring storage")
}

func TestApplyProfileUnknownNameIsPlainServer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := session.Config{Server: "vpn.example.com"}
	saved := applyProfile(&cfg, "vpn.example.com")

	assert.False(t, saved)
	assert.Equal(t, "vpn.example.com", cfg.Server)
}

func TestApplyConfigDefaultsInterface(t *testing.T) {
	app := config.DefaultConfig()
	app.Interface = "tun3"

	cfg := session.Config{Server: "vpn.example.com"}
	applyConfigDefaults(&cfg, app)
	assert.Equal(t, "tun3", cfg.Interface, "config interface must apply when no flag or profile set one")

	cfg = session.Config{Server: "vpn.example.com", Interface: "tun9"}
	applyConfigDefaults(&cfg, app)
	assert.Equal(t, "tun9", cfg.Interface, "an explicit interface must win over config")
}
