package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// SkipWithoutShell skips tests that rely on /bin/sh stub encoders.
func SkipWithoutShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub encoders are shell scripts")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// StubBinaryPath mirrors the runtimes layout for the running platform.
func StubBinaryPath(root string) string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(root, "win", "cavif.exe")
	case "darwin":
		return filepath.Join(root, "mac", "cavif")
	default:
		return filepath.Join(root, "linux-generic", "cavif")
	}
}

// WriteStubEncoder installs an executable shell script as the platform cavif
// binary beneath root and returns its path. body is appended after the
// shebang line.
func WriteStubEncoder(t testing.TB, root, body string) string {
	t.Helper()

	path := StubBinaryPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub encoder %s: %v", path, err)
	}
	// os.WriteFile keeps the mode of an existing file (e.g. a placeholder).
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("chmod stub encoder %s: %v", path, err)
	}
	return path
}

// WritePlaceholder creates a non-executable file at the platform binary path
// so resolution succeeds while launching fails.
func WritePlaceholder(t testing.TB, root string) string {
	t.Helper()

	path := StubBinaryPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("not a binary"), 0o644); err != nil {
		t.Fatalf("write placeholder %s: %v", path, err)
	}
	return path
}

// WriteFile creates path with a few bytes of content, creating parents.
func WriteFile(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
