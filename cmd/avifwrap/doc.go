// Package main hosts the avifwrap CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the structured
// logger, and drives the cavif wrapper for one or more input images. Keep
// this package lean: encoder behaviour lives in internal/cavif and
// environment checks in internal/preflight; commands here only translate
// flags and render results.
package main
