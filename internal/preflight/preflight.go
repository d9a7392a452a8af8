package preflight

import (
	"avifwrap/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks applicable to cfg on the given platform.
func RunAll(cfg *config.Config, goos string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckPlatform(goos),
		CheckDirectoryAccess("Runtimes root", cfg.Encoder.RootDir, accessRead),
		CheckEncoderBinary(cfg.Encoder.RootDir, goos),
	}

	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir, accessWrite))
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
