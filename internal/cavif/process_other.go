//go:build !windows

package cavif

import "os/exec"

func configureProcess(*exec.Cmd) {}
