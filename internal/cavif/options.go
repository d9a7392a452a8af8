package cavif

// Options mirrors the cavif flags the wrapper knows how to emit. Nil pointer
// fields are left to the encoder's own defaults.
type Options struct {
	// Quality from 1 (worst) to 100 (best). cavif defaults to 80.
	Quality *int
	// Speed from 1 (slowest, smallest) to 10 (fastest). cavif defaults to 4.
	Speed *int
	// Overwrite replaces an existing .avif output.
	Overwrite bool
	// DirtyAlpha preserves RGB values of fully transparent pixels.
	DirtyAlpha *bool
	// ColorRGB encodes in RGB instead of YCbCr.
	ColorRGB *bool
	// EmitMessage lets cavif print progress output (drops --quiet).
	EmitMessage bool
}

// DefaultOptions returns Options with the wrapper defaults applied.
func DefaultOptions() Options {
	return Options{Overwrite: true}
}

// Int returns a pointer to v for populating optional numeric fields.
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to v for populating optional flag fields.
func Bool(v bool) *bool {
	return &v
}
