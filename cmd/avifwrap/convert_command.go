package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"avifwrap/internal/cavif"
	"avifwrap/internal/config"
)

type convertFlags struct {
	output      string
	root        string
	quality     int
	speed       int
	noOverwrite bool
	dirtyAlpha  bool
	colorRGB    bool
	verbose     bool
	jsonOutput  bool
}

type conversion struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	cavif.Result
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert <image>...",
		Short: "Encode one or more PNG/JPEG images to AVIF",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.output != "" && len(args) > 1 {
				return errors.New("--output can only be used with a single input image")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			conv, err := ctx.newConverter()
			if err != nil {
				return err
			}
			if root := strings.TrimSpace(flags.root); root != "" {
				expanded, err := config.ExpandPath(root)
				if err != nil {
					return fmt.Errorf("resolve root: %w", err)
				}
				if err := conv.SetRoot(expanded); err != nil {
					return err
				}
			}

			opts := resolveOptions(cmd, cfg.Defaults, flags)
			results, err := runConversions(cmd.Context(), conv, args, flags.output, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				if err := writeJSONResults(out, results); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, renderConversionTable(results, shouldColorize(out)))
			}
			if flags.verbose && !flags.jsonOutput {
				writeMessages(cmd.ErrOrStderr(), results)
			}

			failed := 0
			for _, r := range results {
				if !r.Success {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (single input only; defaults to <input>.avif)")
	cmd.Flags().StringVar(&flags.root, "root", "", "Override encoder.root_dir for this run")
	cmd.Flags().IntVarP(&flags.quality, "quality", "q", 0, "Quality 1 (worst) to 100 (best)")
	cmd.Flags().IntVarP(&flags.speed, "speed", "s", 0, "Speed 1 (slowest) to 10 (fastest)")
	cmd.Flags().BoolVar(&flags.noOverwrite, "no-overwrite", false, "Keep existing .avif files")
	cmd.Flags().BoolVar(&flags.dirtyAlpha, "dirty-alpha", false, "Preserve RGB values of fully transparent pixels")
	cmd.Flags().BoolVar(&flags.colorRGB, "color-rgb", false, "Encode using RGB instead of YCbCr")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Let cavif print its own messages")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print one JSON object per conversion")
	return cmd
}

// resolveOptions layers explicitly set flags over the configured defaults.
// Values are not range-checked here; cavif rejects bad ones itself.
func resolveOptions(cmd *cobra.Command, defaults config.Defaults, flags convertFlags) *cavif.Options {
	opts := &cavif.Options{
		Quality:     defaults.Quality,
		Speed:       defaults.Speed,
		Overwrite:   defaults.Overwrite,
		DirtyAlpha:  defaults.DirtyAlpha,
		ColorRGB:    defaults.ColorRGB,
		EmitMessage: defaults.EmitMessage,
	}
	changed := cmd.Flags().Changed
	if changed("quality") {
		opts.Quality = cavif.Int(flags.quality)
	}
	if changed("speed") {
		opts.Speed = cavif.Int(flags.speed)
	}
	if changed("no-overwrite") {
		opts.Overwrite = !flags.noOverwrite
	}
	if changed("dirty-alpha") {
		opts.DirtyAlpha = cavif.Bool(flags.dirtyAlpha)
	}
	if changed("color-rgb") {
		opts.ColorRGB = cavif.Bool(flags.colorRGB)
	}
	if changed("verbose") {
		opts.EmitMessage = flags.verbose
	}
	return opts
}

// runConversions encodes inputs one after another. Configuration errors stop
// the run; encoder and launch failures are collected as results.
func runConversions(ctx context.Context, conv *cavif.Converter, inputs []string, output string, opts *cavif.Options) ([]conversion, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]conversion, 0, len(inputs))
	for _, input := range inputs {
		pending, err := conv.Convert(ctx, input, output, opts)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", input, err)
		}
		result, err := pending.Wait(ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, conversion{
			Input:  input,
			Output: expectedOutput(input, output),
			Result: result,
		})
	}
	return results, nil
}

func expectedOutput(input, output string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".avif"
}

func writeJSONResults(w io.Writer, results []conversion) error {
	encoder := json.NewEncoder(w)
	for _, r := range results {
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}
	return nil
}

func writeMessages(w io.Writer, results []conversion) {
	for _, r := range results {
		msg := strings.TrimRight(r.Message, "\n")
		if msg == "" {
			continue
		}
		fmt.Fprintf(w, "== %s\n%s\n", r.Input, msg)
	}
}

func renderConversionTable(results []conversion, colorize bool) string {
	headers := []string{"Input", "Output", "Status", "Exit", "Message"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		exit := "-"
		if r.Kind != cavif.LaunchFailed {
			exit = strconv.Itoa(r.ExitCode)
		}
		rows = append(rows, []string{
			r.Input,
			r.Output,
			statusLabel(r.Kind, colorize),
			exit,
			firstLine(r.Message),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
}

func firstLine(message string) string {
	message = strings.TrimSpace(message)
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx] + " …"
	}
	return message
}
