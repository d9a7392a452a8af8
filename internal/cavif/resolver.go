package cavif

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"avifwrap/internal/logging"
)

// DefaultRoot is the runtimes directory searched when no root is configured.
const DefaultRoot = "runtimes"

var (
	// ErrPlatformNotSupported is returned for operating systems without a
	// bundled cavif build.
	ErrPlatformNotSupported = errors.New("platform not supported")
	// ErrBinaryNotFound is returned when the platform binary is absent
	// beneath the configured root.
	ErrBinaryNotFound = errors.New("cavif binary not found")
)

// RelativePath returns the location of the cavif binary beneath the runtimes
// root for the given GOOS value.
func RelativePath(goos string) (string, error) {
	switch goos {
	case "windows":
		return filepath.Join("win", "cavif.exe"), nil
	case "linux":
		return filepath.Join("linux-generic", "cavif"), nil
	case "darwin":
		return filepath.Join("mac", "cavif"), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrPlatformNotSupported, goos)
	}
}

// Resolver locates the cavif binary and caches the result of the first
// successful resolution. Changing the root afterwards does not affect the
// cached path.
type Resolver struct {
	mu     sync.Mutex
	root   string
	goos   string
	path   string
	logger *slog.Logger
}

// NewResolver builds a resolver for the given root and GOOS. An empty root
// falls back to DefaultRoot.
func NewResolver(root, goos string, logger *slog.Logger) *Resolver {
	if root == "" {
		root = DefaultRoot
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{root: root, goos: goos, logger: logger}
}

// SetRoot validates that the platform binary exists under root and then
// records root for later resolution.
func (r *Resolver) SetRoot(root string) error {
	if _, err := checkBinary(root, r.goos); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.path != "" && root != r.root {
		r.logger.Warn("cavif root changed after binary resolution; keeping cached path",
			logging.String("root", root),
			logging.String("cached_path", r.path),
			logging.String(logging.FieldImpact, "new root ignored until restart"),
		)
	}
	r.root = root
	return nil
}

// Root reports the currently configured root directory.
func (r *Resolver) Root() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

// Resolve returns the cavif path, validating it on first use.
func (r *Resolver) Resolve() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.path != "" {
		return r.path, nil
	}
	path, err := checkBinary(r.root, r.goos)
	if err != nil {
		return "", err
	}
	r.path = path
	r.logger.Debug("cavif binary resolved", logging.String("path", path), logging.String("goos", r.goos))
	return path, nil
}

func checkBinary(root, goos string) (string, error) {
	rel, err := RelativePath(goos)
	if err != nil {
		return "", err
	}
	path := filepath.Join(root, rel)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, path)
		}
		return "", fmt.Errorf("stat cavif binary %q: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrBinaryNotFound, path)
	}
	return path, nil
}
