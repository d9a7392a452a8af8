// Package cavif drives the external cavif AVIF encoder.
//
// It resolves the platform-specific encoder binary beneath a runtimes root,
// translates Options into the encoder's command-line vocabulary, and runs the
// encoder in a background goroutine so callers receive a Pending handle
// immediately. Encoding itself never happens in-process.
//
// Configuration problems (unsupported platform, missing binary) are returned
// as errors before anything is spawned. Everything that happens after that
// point, including launch failures, is reported through the Result delivered
// by the Pending handle.
package cavif
