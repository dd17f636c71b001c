package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndikit/ndi"
)

type RecvOptions struct {
	Source    string
	Timeout   time.Duration
	Count     int
	Bandwidth string
}

func NewRecvCommand() *cobra.Command {
	opts := &RecvOptions{}

	cmd := &cobra.Command{
		Use:   "recv",
		Short: "Connect to a source and print received frames",
		Example: `  ndictl recv --source "MACHINE (Channel 1)"
  ndictl recv --source Bars --count 30
  ndictl recv --source Bars --bandwidth lowest`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecv(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Source, "source", "s", "", "Source name to connect to (required)")
	flags.DurationVarP(&opts.Timeout, "timeout", "t", time.Second, "Per-capture timeout")
	flags.IntVarP(&opts.Count, "count", "c", 0, "Frames to receive (0 = until interrupted)")
	flags.StringVar(&opts.Bandwidth, "bandwidth", "highest", "Stream bandwidth (highest, lowest, audio-only, metadata-only)")
	cmd.MarkFlagRequired("source")

	return cmd
}

func parseBandwidth(s string) (ndi.Bandwidth, error) {
	switch s {
	case "highest", "":
		return ndi.BandwidthHighest, nil
	case "lowest":
		return ndi.BandwidthLowest, nil
	case "audio-only":
		return ndi.BandwidthAudioOnly, nil
	case "metadata-only":
		return ndi.BandwidthMetadataOnly, nil
	default:
		return 0, fmt.Errorf("unknown bandwidth %q", s)
	}
}

func runRecv(cmd *cobra.Command, opts *RecvOptions) error {
	bandwidth, err := parseBandwidth(opts.Bandwidth)
	if err != nil {
		return err
	}

	config := ndi.DefaultReceiverConfig()
	config.Bandwidth = bandwidth
	config.Name = "ndictl"

	receiver, err := ndi.NewReceiver(config)
	if err != nil {
		return fmt.Errorf("create receiver: %w", err)
	}
	defer receiver.Close()

	if err := receiver.ConnectByName(opts.Source); err != nil {
		return fmt.Errorf("connect to %q: %w", opts.Source, err)
	}
	log.Infof("connected to %q", opts.Source)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	received := 0
	for {
		select {
		case <-ctx.Done():
			log.Infof("interrupted after %d frames", received)
			return nil
		default:
		}

		c, err := receiver.Capture(opts.Timeout)
		if err != nil {
			return fmt.Errorf("capture: %w", err)
		}
		if c.Type == ndi.FrameTypeNone {
			log.Debug("no frame within timeout")
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), describeCapture(c))
		received++
		if opts.Count > 0 && received >= opts.Count {
			return nil
		}
	}
}
