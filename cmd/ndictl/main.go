// ndictl is a command-line tool for working with NDI streams: discovering
// sources on the network, transmitting test patterns, and inspecting
// received frames.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
