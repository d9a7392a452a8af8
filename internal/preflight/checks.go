package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"avifwrap/internal/cavif"
)

type accessMode int

const (
	accessRead accessMode = iota
	accessWrite
)

// CheckPlatform reports whether a cavif build is bundled for goos.
func CheckPlatform(goos string) Result {
	const name = "Platform"
	rel, err := cavif.RelativePath(goos)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: no bundled cavif build)", goos)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (uses %s)", goos, filepath.ToSlash(rel))}
}

// CheckDirectoryAccess verifies that the directory exists and allows the
// requested access.
func CheckDirectoryAccess(name, path string, mode accessMode) Result {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkDirAccess(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	label := "read ok"
	if mode == accessWrite {
		label = "read/write ok"
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, label)}
}

// CheckEncoderBinary verifies the platform cavif binary exists under root and
// is executable.
func CheckEncoderBinary(root, goos string) Result {
	const name = "cavif binary"
	rel, err := cavif.RelativePath(goos)
	if err != nil {
		return Result{Name: name, Detail: "skipped (platform not supported)"}
	}
	path := filepath.Join(root, rel)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: not found)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := checkExecutable(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not executable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (executable)", path)}
}
