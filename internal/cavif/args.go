package cavif

import (
	"strconv"
	"strings"
)

// Args is the encoder invocation built from Options.
//
// Tokens keeps the cavif command-line form where a flag and its value share
// a token and paths are double quoted. Argv carries the same arguments split
// for os/exec, which needs no shell quoting.
type Args struct {
	tokens []string
	argv   []string
}

// BuildArgs maps an input image, optional output path and optional Options
// to the encoder arguments. Numeric values are passed through unchecked; cavif
// rejects out-of-range values itself.
func BuildArgs(image, output string, opts *Options) Args {
	var a Args
	if opts == nil {
		a.add("--quiet")
		a.add("--overwrite")
	} else {
		if !opts.EmitMessage {
			a.add("--quiet")
		}
		if opts.Overwrite {
			a.add("--overwrite")
		}
		if opts.Speed != nil {
			a.add("--speed", strconv.Itoa(*opts.Speed))
		}
		if opts.Quality != nil {
			a.add("--quality", strconv.Itoa(*opts.Quality))
		}
		if opts.ColorRGB != nil && *opts.ColorRGB {
			a.add("--color", "rgb")
		}
		if opts.DirtyAlpha != nil && *opts.DirtyAlpha {
			a.add("--dirty-alpha")
		}
	}

	if output != "" {
		a.tokens = append(a.tokens, "-o "+quote(output))
		a.argv = append(a.argv, "-o", output)
	}

	a.tokens = append(a.tokens, quote(image))
	a.argv = append(a.argv, image)
	return a
}

func (a *Args) add(flag string, values ...string) {
	token := flag
	if len(values) > 0 {
		token += " " + strings.Join(values, " ")
	}
	a.tokens = append(a.tokens, token)
	a.argv = append(a.argv, flag)
	a.argv = append(a.argv, values...)
}

// Tokens returns a copy of the command-line tokens.
func (a Args) Tokens() []string {
	return append([]string(nil), a.tokens...)
}

// Argv returns a copy of the arguments in exec form.
func (a Args) Argv() []string {
	return append([]string(nil), a.argv...)
}

// String joins the tokens into a single command line.
func (a Args) String() string {
	return strings.Join(a.tokens, " ")
}

func quote(path string) string {
	return `"` + path + `"`
}
