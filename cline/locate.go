package cline

import (
	"os"
	"os/exec"

	"github.com/hissain/cline-ui/clinecontract"
)

// Locate resolves the path to the cline binary. Resolution order:
//
//  1. override, when non-empty and present on disk
//  2. PATH lookup of the bare binary name
//  3. well-known install locations (nvm global bin, /usr/local/bin,
//     /opt/homebrew/bin)
//
// A configured override that no longer exists is not an error by itself;
// resolution falls through to the remaining steps so a stale setting does
// not brick the client. ErrNotFound is returned only when every step fails.
func Locate(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return override, nil
		}
	}

	if path, err := exec.LookPath(clinecontract.BinaryName); err == nil {
		return path, nil
	}

	home, _ := os.UserHomeDir()
	for _, candidate := range clinecontract.WellKnownPaths(home) {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", NewError("locate", ErrNotFound, false)
}
