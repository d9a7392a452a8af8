package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the avifwrap version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "avifwrap %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
