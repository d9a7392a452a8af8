//go:build !unix

package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func checkDirAccess(path string, mode accessMode) error {
	if mode != accessWrite {
		_, err := os.ReadDir(path)
		return err
	}
	probe, err := os.CreateTemp(path, ".avifwrap-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

func checkExecutable(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".exe") {
		return fmt.Errorf("%s lacks an .exe extension", filepath.Base(path))
	}
	return nil
}
