// Package preflight verifies the environment before conversions run: that the
// platform has a bundled encoder, that the runtimes root is readable, and that
// the cavif binary beneath it can be executed.
package preflight
