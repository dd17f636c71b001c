package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ndikit/ndi"
)

type FindOptions struct {
	Timeout      time.Duration
	OutputFormat string
	ShowLocal    bool
}

func NewFindCommand() *cobra.Command {
	opts := &FindOptions{}

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Scan the network for NDI sources",
		Example: `  ndictl find
  ndictl find --timeout 5s
  ndictl find --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.DurationVarP(&opts.Timeout, "timeout", "t", 3*time.Second, "How long to wait for sources")
	flags.StringVarP(&opts.OutputFormat, "output", "o", "text", "Output format (json or text)")
	flags.BoolVar(&opts.ShowLocal, "show-local", true, "Include sources advertised by this machine")

	return cmd
}

func runFind(cmd *cobra.Command, opts *FindOptions) error {
	finder, err := ndi.NewFinder(ndi.FinderConfig{
		ShowLocalSources: opts.ShowLocal,
		Groups:           viper.GetString("groups"),
		ExtraIPs:         viper.GetString("extra_ips"),
	})
	if err != nil {
		return fmt.Errorf("create finder: %w", err)
	}
	defer finder.Close()

	log.Debugf("scanning for %v", opts.Timeout)
	sources, err := finder.Sources(opts.Timeout)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	out, err := formatSources(sources, opts.OutputFormat)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
