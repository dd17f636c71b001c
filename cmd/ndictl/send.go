package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ndikit/ndi"
)

type SendOptions struct {
	Name    string
	Width   int
	Height  int
	FPS     int
	Pattern string
	Count   int
}

func NewSendCommand() *cobra.Command {
	opts := &SendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Advertise a stream and transmit a test pattern",
		Example: `  ndictl send --name "Test Pattern"
  ndictl send --name Bars --width 1920 --height 1080 --fps 60
  ndictl send --name Ramp --pattern gradient --count 300`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Name, "name", "n", "", "Stream name to advertise (required)")
	flags.IntVar(&opts.Width, "width", 1280, "Frame width")
	flags.IntVar(&opts.Height, "height", 720, "Frame height")
	flags.IntVar(&opts.FPS, "fps", 30, "Frames per second")
	flags.StringVarP(&opts.Pattern, "pattern", "p", "colorbars", "Pattern (colorbars, gradient, checkerboard)")
	flags.IntVarP(&opts.Count, "count", "c", 0, "Frames to send (0 = until interrupted)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runSend(opts *SendOptions) error {
	pattern, err := ndi.ParsePatternType(opts.Pattern)
	if err != nil {
		return err
	}
	if opts.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}

	sender, err := ndi.NewSender(ndi.SenderConfig{
		Name:   opts.Name,
		Groups: viper.GetString("groups"),
	})
	if err != nil {
		return fmt.Errorf("create sender: %w", err)
	}
	defer sender.Close()

	frame := &ndi.VideoFrame{
		Width:      opts.Width &^ 1,
		Height:     opts.Height,
		FourCC:     ndi.FourCCUYVY,
		FrameRateN: opts.FPS,
		FrameRateD: 1,
		Data:       ndi.TestPattern(pattern, opts.Width, opts.Height),
	}
	if frame.Data == nil {
		return fmt.Errorf("invalid dimensions %dx%d", opts.Width, opts.Height)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infof("sending %q %dx%d %s at %d fps", opts.Name, frame.Width, frame.Height, pattern, opts.FPS)

	// The sender does no pacing of its own; the ticker owns the frame clock.
	ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
	defer ticker.Stop()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			log.Infof("interrupted after %d frames", sent)
			return nil
		case <-ticker.C:
			if err := sender.SendVideo(frame); err != nil {
				return fmt.Errorf("send frame %d: %w", sent, err)
			}
			sent++
			if opts.Count > 0 && sent >= opts.Count {
				log.Infof("sent %d frames", sent)
				return nil
			}
		}
	}
}
