package session

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/yllada/ocmgr/common"
)

// Locate resolves the path to the openconnect binary.
// An explicit path must name an existing regular file; otherwise the
// executable search path is consulted. Returns common.ErrBinaryNotFound
// when neither yields a usable executable.
func Locate(explicit string) (string, error) {
	if explicit != "" {
		path := common.ExpandHome(explicit)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("%w at: %s", common.ErrBinaryNotFound, path)
		}
		return path, nil
	}

	found, err := exec.LookPath(common.BinaryName)
	if err != nil {
		return "", fmt.Errorf("%w: install it (e.g. sudo apt-get install openconnect)", common.ErrBinaryNotFound)
	}
	return found, nil
}
