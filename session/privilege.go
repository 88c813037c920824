package session

import (
	"fmt"
	"os"
	"runtime"

	"github.com/yllada/ocmgr/common"
)

// CheckPrivileges verifies the process can create TUN devices: the host
// must be Unix-like and the effective user must be root. Pure check, no
// side effects. Called before connect and disconnect.
func CheckPrivileges() error {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		return fmt.Errorf("%w: this tool targets Linux/Unix", common.ErrPlatformUnsupported)
	}
	if os.Geteuid() != 0 {
		return fmt.Errorf("%w: openconnect needs a tun device (use sudo)", common.ErrRootRequired)
	}
	return nil
}
