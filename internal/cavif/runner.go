package cavif

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"avifwrap/internal/logging"
)

// Process is a started encoder that can be waited on once.
type Process interface {
	// Wait blocks until the process exits and its output has been drained.
	Wait() error
}

// Executor abstracts process creation for testability. Start must not block
// on the child; an error from Start means the process never launched.
type Executor interface {
	Start(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) (Process, error)
}

// Runner launches the encoder and resolves a Pending handle when it exits.
type Runner struct {
	exec    Executor
	timeout time.Duration
	logger  *slog.Logger
}

// NewRunner constructs a runner. A nil executor uses os/exec; a zero timeout
// lets the encoder run until it exits on its own.
func NewRunner(executor Executor, timeout time.Duration, logger *slog.Logger) *Runner {
	if executor == nil {
		executor = commandExecutor{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{exec: executor, timeout: timeout, logger: logger}
}

// Start spawns binary with args and returns immediately. Cancelling ctx does
// not stop the encoder; only the runner timeout does.
func (r *Runner) Start(ctx context.Context, binary string, args Args) *Pending {
	logger := logging.WithContext(ctx, r.logger)

	runCtx := context.WithoutCancel(ctx)
	cancel := context.CancelFunc(func() {})
	if r.timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, r.timeout)
	}

	var (
		mu     sync.Mutex
		output strings.Builder
	)
	onStdout := func(line string) {
		mu.Lock()
		output.WriteString(line)
		output.WriteByte('\n')
		mu.Unlock()
	}
	onStderr := func(line string) {
		logger.Debug("cavif stderr", logging.String("line", line))
	}

	started := time.Now()
	proc, err := r.exec.Start(runCtx, binary, args.Argv(), onStdout, onStderr)
	if err != nil {
		cancel()
		logger.Error("cavif launch failed",
			logging.String("binary", binary),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify the binary is executable for this platform"),
		)
		return resolvedPending(launchFailedResult(err))
	}
	logger.Debug("cavif started", logging.String("binary", binary), logging.String("args", args.String()))

	pending := newPending()
	go func() {
		defer cancel()
		waitErr := proc.Wait()

		mu.Lock()
		message := output.String()
		mu.Unlock()

		var result Result
		if waitErr == nil {
			result = succeededResult(message)
			logger.Info("cavif finished", logging.Duration("elapsed", time.Since(started)))
		} else {
			code := exitCode(waitErr)
			if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
				waitErr = fmt.Errorf("timed out after %s: %w", r.timeout, waitErr)
			}
			result = encoderFailedResult(message, code)
			logger.Warn("cavif exited with failure",
				logging.Int("exit_code", code),
				logging.Error(waitErr),
				logging.Duration("elapsed", time.Since(started)),
				logging.String(logging.FieldImpact, "output image not produced"),
			)
		}
		pending.resolve(result)
	}()
	return pending
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

type commandExecutor struct{}

func (commandExecutor) Start(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) (Process, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	configureProcess(cmd)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &commandProcess{
		ctx:      ctx,
		cmd:      cmd,
		stdout:   stdout,
		stderr:   stderr,
		onStdout: onStdout,
		onStderr: onStderr,
	}, nil
}

type commandProcess struct {
	ctx      context.Context
	cmd      *exec.Cmd
	stdout   io.ReadCloser
	stderr   io.ReadCloser
	onStdout func(string)
	onStderr func(string)
}

// Wait drains both pipes and then reports the exit status. Killing the
// encoder does not close pipes inherited by its children, so they are closed
// here once ctx ends.
func (p *commandProcess) Wait() error {
	stop := context.AfterFunc(p.ctx, func() {
		_ = p.stdout.Close()
		_ = p.stderr.Close()
	})
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		readLines(p.stdout, p.onStdout, p.onStderr)
	}()
	go func() {
		defer wg.Done()
		readLines(p.stderr, p.onStderr, nil)
	}()
	wg.Wait()
	return p.cmd.Wait()
}

// readLines forwards every line of r without a length limit. A read error is
// reported through onError and the rest of the stream is discarded so the
// child never blocks on a full pipe.
func readLines(r io.Reader, forward, onError func(string)) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" && forward != nil {
			forward(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
			if onError != nil {
				onError("read output: " + err.Error())
			}
			_, _ = io.Copy(io.Discard, reader)
		}
		return
	}
}
