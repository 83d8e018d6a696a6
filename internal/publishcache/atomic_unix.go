//go:build !windows

package publishcache

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic uses renameio so readers never observe a half-written
// fingerprint.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
