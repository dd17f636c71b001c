package ndi

import "fmt"

// Source describes one stream advertised on the network. Values are copied
// out of the finder's scan result and carry no native resource.
type Source struct {
	// Name is the full advertised name, e.g. "MACHINE (Channel 1)".
	Name string
	// URLAddress is the IP:port the source resolves to. May be empty when
	// connecting by name only.
	URLAddress string
}

func (s Source) String() string {
	if s.URLAddress == "" {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.URLAddress)
}
