package cavif

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"

	"avifwrap/internal/logging"
	"avifwrap/internal/services"
)

// Option configures a Converter.
type Option func(*settings)

type settings struct {
	root     string
	goos     string
	executor Executor
	timeout  time.Duration
	logger   *slog.Logger
}

// WithRoot sets the initial runtimes root without validating it.
func WithRoot(root string) Option {
	return func(s *settings) {
		s.root = root
	}
}

// WithGOOS overrides the detected operating system (primarily for tests).
func WithGOOS(goos string) Option {
	return func(s *settings) {
		if goos != "" {
			s.goos = goos
		}
	}
}

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(s *settings) {
		if exec != nil {
			s.executor = exec
		}
	}
}

// WithTimeout bounds how long a single encoder process may run. On expiry the
// encoder is killed and its output pipes are closed, so children it leaves
// behind cannot hold the result open.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithLogger sets the logger used for resolution and process events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Converter encodes images to AVIF by running cavif.
type Converter struct {
	resolver *Resolver
	runner   *Runner
	logger   *slog.Logger
}

// New constructs a Converter. The binary is not checked until SetRoot or
// the first Convert call.
func New(opts ...Option) *Converter {
	s := settings{goos: runtime.GOOS, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	logger := logging.NewComponentLogger(s.logger, "cavif")
	return &Converter{
		resolver: NewResolver(s.root, s.goos, logger),
		runner:   NewRunner(s.executor, s.timeout, logger),
		logger:   logger,
	}
}

// SetRoot points the converter at a new runtimes root, failing immediately
// if the platform binary is missing there. It must be called before the
// first conversion to take effect.
func (c *Converter) SetRoot(root string) error {
	return c.resolver.SetRoot(root)
}

// Root reports the configured runtimes root.
func (c *Converter) Root() string {
	return c.resolver.Root()
}

// BinaryPath resolves (and caches) the cavif binary location.
func (c *Converter) BinaryPath() (string, error) {
	return c.resolver.Resolve()
}

// Convert starts encoding image to AVIF. An empty output lets cavif choose
// the destination next to the input; nil opts applies --quiet --overwrite.
//
// The returned error is non-nil only for configuration problems detected
// before launch. Launch and encoder failures arrive through the Pending
// result.
func (c *Converter) Convert(ctx context.Context, image, output string, opts *Options) (*Pending, error) {
	binary, err := c.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	ctx = services.WithInput(ctx, image)
	args := BuildArgs(image, output, opts)
	return c.runner.Start(ctx, binary, args), nil
}
