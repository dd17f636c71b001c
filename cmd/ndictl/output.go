package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ndikit/ndi"
)

// formatSources renders a scan result as text (one source per line) or JSON.
func formatSources(sources []ndi.Source, format string) (string, error) {
	switch format {
	case "json":
		type sourceJSON struct {
			Name    string `json:"name"`
			Address string `json:"address,omitempty"`
		}
		out := make([]sourceJSON, len(sources))
		for i, s := range sources {
			out[i] = sourceJSON{Name: s.Name, Address: s.URLAddress}
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	case "text", "":
		if len(sources) == 0 {
			return "no sources found\n", nil
		}
		var b strings.Builder
		for _, s := range sources {
			fmt.Fprintln(&b, s.String())
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// describeCapture renders one received frame as a single summary line.
func describeCapture(c ndi.Capture) string {
	switch c.Type {
	case ndi.FrameTypeVideo:
		v := c.Video
		return fmt.Sprintf("video %dx%d %s %d/%d fps timecode=%d (%d bytes)",
			v.Width, v.Height, v.FourCC, v.FrameRateN, v.FrameRateD, v.Timecode, len(v.Data))
	case ndi.FrameTypeAudio:
		a := c.Audio
		return fmt.Sprintf("audio %d Hz %dch %d samples timecode=%d",
			a.SampleRate, a.Channels, a.Samples, a.Timecode)
	case ndi.FrameTypeMetadata:
		m := c.Metadata
		data := m.Data
		if len(data) > 60 {
			data = data[:60] + "..."
		}
		return fmt.Sprintf("metadata timecode=%d %q", m.Timecode, data)
	default:
		return "none"
	}
}
