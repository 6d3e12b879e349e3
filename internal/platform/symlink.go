package platform

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// ErrSymlinkUnsupported is returned when the OS refused to create a symlink
// and only the .target sidecar could be written.
var ErrSymlinkUnsupported = errors.New("symlinks are not available on this system")

const sidecarSuffix = ".target"

// CreateSymlink creates link pointing at target. When the link already points
// at target this is a no-op; any other existing entry at link is an error.
// On Windows without developer mode it writes link+".target" recording the
// intended target and returns ErrSymlinkUnsupported.
func CreateSymlink(target, link string) error {
	if existing, err := os.Readlink(link); err == nil {
		if existing == target {
			return nil
		}
		return fmt.Errorf("%s already links to %s", link, existing)
	}
	if _, err := os.Lstat(link); err == nil {
		return fmt.Errorf("%s already exists", link)
	}

	err := os.Symlink(target, link)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}

	if werr := os.WriteFile(link+sidecarSuffix, []byte(target), 0644); werr != nil {
		return fmt.Errorf("symlink failed (%v) and sidecar could not be written: %w", err, werr)
	}
	return ErrSymlinkUnsupported
}

// RemoveSymlink removes a symlink and any sidecar left next to it. A missing
// link is not an error.
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	os.Remove(path + sidecarSuffix) // best-effort
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ReadSymlinkTarget returns the target of a symlink, falling back to the
// .target sidecar when no native link exists.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	data, readErr := os.ReadFile(path + sidecarSuffix)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
