package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"avifwrap/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the cavif binary and runtimes root for this platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cfg, runtime.GOOS)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, passLabel(r.Passed, colorize), r.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))

			if !preflight.AllPassed(results) {
				return errors.New("preflight checks failed")
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
