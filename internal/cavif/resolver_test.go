package cavif_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"avifwrap/internal/cavif"
)

func placeBinary(t *testing.T, root, goos string) string {
	t.Helper()
	rel, err := cavif.RelativePath(goos)
	if err != nil {
		t.Fatalf("RelativePath(%q): %v", goos, err)
	}
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("bin"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	return path
}

func TestRelativePathPerPlatform(t *testing.T) {
	cases := map[string]string{
		"windows": filepath.Join("win", "cavif.exe"),
		"linux":   filepath.Join("linux-generic", "cavif"),
		"darwin":  filepath.Join("mac", "cavif"),
	}
	for goos, want := range cases {
		got, err := cavif.RelativePath(goos)
		if err != nil {
			t.Fatalf("RelativePath(%q) returned error: %v", goos, err)
		}
		if got != want {
			t.Fatalf("RelativePath(%q) = %q, want %q", goos, got, want)
		}
	}

	for _, goos := range []string{"freebsd", "plan9", ""} {
		if _, err := cavif.RelativePath(goos); !errors.Is(err, cavif.ErrPlatformNotSupported) {
			t.Fatalf("RelativePath(%q) error = %v, want ErrPlatformNotSupported", goos, err)
		}
	}
}

func TestResolverUnsupportedPlatform(t *testing.T) {
	resolver := cavif.NewResolver(t.TempDir(), "plan9", nil)
	if _, err := resolver.Resolve(); !errors.Is(err, cavif.ErrPlatformNotSupported) {
		t.Fatalf("expected ErrPlatformNotSupported, got %v", err)
	}
	if err := resolver.SetRoot(t.TempDir()); !errors.Is(err, cavif.ErrPlatformNotSupported) {
		t.Fatalf("expected ErrPlatformNotSupported from SetRoot, got %v", err)
	}
}

func TestResolverMissingBinary(t *testing.T) {
	resolver := cavif.NewResolver(t.TempDir(), "linux", nil)
	_, err := resolver.Resolve()
	if !errors.Is(err, cavif.ErrBinaryNotFound) {
		t.Fatalf("expected ErrBinaryNotFound, got %v", err)
	}
}

func TestResolverRejectsDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "linux-generic", "cavif"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	resolver := cavif.NewResolver(root, "linux", nil)
	if _, err := resolver.Resolve(); !errors.Is(err, cavif.ErrBinaryNotFound) {
		t.Fatalf("expected ErrBinaryNotFound for directory, got %v", err)
	}
}

func TestResolverCachesFirstResolution(t *testing.T) {
	root := t.TempDir()
	want := placeBinary(t, root, "darwin")
	resolver := cavif.NewResolver(root, "darwin", nil)

	got, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Resolve = %q, want %q", got, want)
	}

	if err := os.Remove(want); err != nil {
		t.Fatalf("remove binary: %v", err)
	}
	again, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("expected cached resolution without re-validation, got %v", err)
	}
	if again != want {
		t.Fatalf("cached Resolve = %q, want %q", again, want)
	}
}

func TestResolverIgnoresRootChangeAfterResolution(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	firstPath := placeBinary(t, first, "linux")
	placeBinary(t, second, "linux")

	resolver := cavif.NewResolver(first, "linux", nil)
	if _, err := resolver.Resolve(); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if err := resolver.SetRoot(second); err != nil {
		t.Fatalf("SetRoot returned error: %v", err)
	}
	if resolver.Root() != second {
		t.Fatalf("expected root to be recorded, got %q", resolver.Root())
	}
	got, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != firstPath {
		t.Fatalf("expected cached path %q after root change, got %q", firstPath, got)
	}
}

func TestResolverSetRootValidatesBeforeStoring(t *testing.T) {
	good := t.TempDir()
	placeBinary(t, good, "windows")
	resolver := cavif.NewResolver(good, "windows", nil)

	if err := resolver.SetRoot(t.TempDir()); !errors.Is(err, cavif.ErrBinaryNotFound) {
		t.Fatalf("expected ErrBinaryNotFound, got %v", err)
	}
	if resolver.Root() != good {
		t.Fatalf("root changed despite failed validation: %q", resolver.Root())
	}
}

func TestResolverDefaultsRoot(t *testing.T) {
	resolver := cavif.NewResolver("", "linux", nil)
	if resolver.Root() != cavif.DefaultRoot {
		t.Fatalf("expected default root %q, got %q", cavif.DefaultRoot, resolver.Root())
	}
}

func TestResolverConcurrentFirstResolution(t *testing.T) {
	root := t.TempDir()
	want := placeBinary(t, root, "linux")
	resolver := cavif.NewResolver(root, "linux", nil)

	const workers = 16
	paths := make([]string, workers)
	errs := make([]error, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			paths[i], errs[i] = resolver.Resolve()
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: Resolve returned error: %v", i, errs[i])
		}
		if paths[i] != want {
			t.Fatalf("worker %d: Resolve = %q, want %q", i, paths[i], want)
		}
	}
}
