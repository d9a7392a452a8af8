package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"avifwrap/internal/cavif"
	"avifwrap/internal/testsupport"
)

const echoArgsEncoder = `echo "args: $*"`

func decodeResults(t *testing.T, out string) []conversion {
	t.Helper()
	var results []conversion
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var r conversion
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		results = append(results, r)
	}
	return results
}

func TestConvertDefaultsFromConfig(t *testing.T) {
	env := setupCLITestEnv(t, echoArgsEncoder)
	input := filepath.Join(env.workDir, "in.png")

	out, _, err := runCLI(t, []string{"convert", "--json", input}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	results := decodeResults(t, out)
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	r := results[0]
	if !r.Success {
		t.Fatalf("expected success, got %+v", r)
	}
	if r.Message != "args: --quiet --overwrite "+input+"\n" {
		t.Fatalf("unexpected message %q", r.Message)
	}
	if r.Output != filepath.Join(env.workDir, "in.avif") {
		t.Fatalf("unexpected derived output %q", r.Output)
	}
}

func TestConvertFlagsOverrideDefaults(t *testing.T) {
	env := setupCLITestEnv(t, echoArgsEncoder)
	input := filepath.Join(env.workDir, "in.png")
	output := filepath.Join(env.workDir, "out.avif")

	out, _, err := runCLI(t, []string{
		"convert", "--json",
		"--quality", "60", "--speed", "3", "--no-overwrite", "--color-rgb", "--dirty-alpha",
		"-o", output, input,
	}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	results := decodeResults(t, out)
	want := "args: --quiet --speed 3 --quality 60 --color rgb --dirty-alpha -o " + output + " " + input + "\n"
	if results[0].Message != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", results[0].Message, want)
	}
}

func TestConvertVerboseDropsQuiet(t *testing.T) {
	env := setupCLITestEnv(t, echoArgsEncoder)
	input := filepath.Join(env.workDir, "in.png")

	out, stderr, err := runCLI(t, []string{"convert", "--verbose", input}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "succeeded")
	requireContains(t, stderr, "args: --overwrite "+input)
	if strings.Contains(stderr, "--quiet") {
		t.Fatalf("expected no --quiet with --verbose, got %q", stderr)
	}
}

func TestConvertReportsEncoderFailure(t *testing.T) {
	env := setupCLITestEnv(t, "echo \"cannot decode\"\nexit 2")
	input := filepath.Join(env.workDir, "in.png")

	out, _, err := runCLI(t, []string{"convert", input, input}, env.configPath)
	if err == nil {
		t.Fatal("expected error when conversions fail")
	}
	requireContains(t, err.Error(), "2 of 2 conversions failed")
	requireContains(t, out, "encoder_failed")
	requireContains(t, out, "cannot decode")
}

func TestConvertHonoursConfiguredTimeout(t *testing.T) {
	env := setupCLITestEnv(t, "exec sleep 5", testsupport.WithTimeout(1))
	input := filepath.Join(env.workDir, "in.png")

	started := time.Now()
	out, _, err := runCLI(t, []string{"convert", "--json", input}, env.configPath)
	if err == nil {
		t.Fatal("expected timed out conversion to fail")
	}
	if elapsed := time.Since(started); elapsed > 4*time.Second {
		t.Fatalf("conversion took %s, expected the 1s timeout to stop it", elapsed)
	}
	results := decodeResults(t, out)
	if len(results) != 1 || results[0].Kind != cavif.EncoderFailed {
		t.Fatalf("expected one encoder_failed result, got %+v", results)
	}
}

func TestConvertMissingBinaryIsConfigurationError(t *testing.T) {
	env := setupCLITestEnv(t, "")
	input := filepath.Join(env.workDir, "in.png")

	_, _, err := runCLI(t, []string{"convert", input}, env.configPath)
	if !errors.Is(err, cavif.ErrBinaryNotFound) {
		t.Fatalf("expected ErrBinaryNotFound, got %v", err)
	}
}

func TestConvertRootFlagValidatesImmediately(t *testing.T) {
	env := setupCLITestEnv(t, echoArgsEncoder)
	input := filepath.Join(env.workDir, "in.png")

	_, _, err := runCLI(t, []string{"convert", "--root", t.TempDir(), input}, env.configPath)
	if !errors.Is(err, cavif.ErrBinaryNotFound) {
		t.Fatalf("expected ErrBinaryNotFound for empty root, got %v", err)
	}

	out, _, err := runCLI(t, []string{"convert", "--json", "--root", env.root, input}, env.configPath)
	if err != nil {
		t.Fatalf("convert with valid root: %v", err)
	}
	if results := decodeResults(t, out); !results[0].Success {
		t.Fatalf("expected success, got %+v", results[0])
	}
}

func TestConvertOutputRequiresSingleInput(t *testing.T) {
	env := setupCLITestEnv(t, echoArgsEncoder)
	input := filepath.Join(env.workDir, "in.png")

	_, _, err := runCLI(t, []string{"convert", "-o", "out.avif", input, input}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "single input") {
		t.Fatalf("expected single input error, got %v", err)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo\n"); got != "one …" {
		t.Fatalf("unexpected first line %q", got)
	}
	if got := firstLine("only\n"); got != "only" {
		t.Fatalf("unexpected first line %q", got)
	}
}
