package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndikit/ndi"
)

// bindingVersion is stamped by the release build via -ldflags.
var bindingVersion = "dev"

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print binding and runtime version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ndictl %s\n", bindingVersion)
			fmt.Fprintf(out, "CPU supported: %t\n", ndi.IsSupportedCPU())

			runtime, err := ndi.Version()
			if err != nil {
				fmt.Fprintf(out, "runtime: unavailable (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "runtime: %s\n", runtime)
			return nil
		},
	}
}
