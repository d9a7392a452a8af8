// Package services holds context helpers shared by the encoder wrapper and
// the CLI.
//
// Conversions stamp a correlation identifier and the source image onto the
// context so every log line emitted while the encoder runs can be tied back to
// the request that started it.
package services
