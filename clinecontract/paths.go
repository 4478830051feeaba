package clinecontract

import "path/filepath"

// BinaryName is the executable name looked up on PATH.
const BinaryName = "cline"

// WellKnownPaths returns the fixed list of installation locations probed
// when the binary is neither configured nor on PATH. home is the user's
// home directory; entries that need it are skipped when home is empty.
func WellKnownPaths(home string) []string {
	var paths []string
	if home != "" {
		// npm global install under nvm
		paths = append(paths, filepath.Join(home, ".nvm/versions/node/v22.18.0/bin", BinaryName))
	}
	paths = append(paths,
		filepath.Join("/usr/local/bin", BinaryName),
		filepath.Join("/opt/homebrew/bin", BinaryName),
	)
	return paths
}
