//go:build unix

package preflight

import "golang.org/x/sys/unix"

func checkDirAccess(path string, mode accessMode) error {
	bits := uint32(unix.R_OK | unix.X_OK)
	if mode == accessWrite {
		bits |= unix.W_OK
	}
	return unix.Access(path, bits)
}

func checkExecutable(path string) error {
	return unix.Access(path, unix.X_OK)
}
