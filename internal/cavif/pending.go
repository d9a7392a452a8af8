package cavif

import "context"

// Pending is the handle for a conversion in flight. It is resolved exactly
// once, when the encoder exits or fails to launch.
type Pending struct {
	done   chan struct{}
	result Result
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func resolvedPending(result Result) *Pending {
	p := newPending()
	p.resolve(result)
	return p
}

func (p *Pending) resolve(result Result) {
	p.result = result
	close(p.done)
}

// Done is closed once the result is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the result is available or ctx ends. Giving up on the
// wait leaves the encoder running and returns a Result of kind Unknown.
func (p *Pending) Wait(ctx context.Context) (Result, error) {
	select {
	case <-p.done:
		return p.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Result returns the outcome without blocking; ok is false, and the Result
// of kind Unknown, while the encoder is still running.
func (p *Pending) Result() (Result, bool) {
	select {
	case <-p.done:
		return p.result, true
	default:
		return Result{}, false
	}
}
