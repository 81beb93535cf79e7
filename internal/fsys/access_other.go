//go:build !unix

package fsys

import "os"

// readable falls back to opening path. CanRead only gets here for regular
// files and directories, which never block on open.
func readable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
